package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pperrors "innkeep/internal/priceperiods/errors"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Room_price_periods"
)

type mongoPricePeriodRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type PricePeriodRepository interface {
	Create(ctx context.Context, period *model.RoomPricePeriod) error
	FindByID(ctx context.Context, id string) (*model.RoomPricePeriod, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.RoomPricePeriod, error)
	FindByRoomType(ctx context.Context, roomType string, limit int, offset int64) ([]*model.RoomPricePeriod, error)
	// FindOverlapping returns periods for roomType whose [start_date, end_date)
	// intersects [start, end), excluding excludeID when non-empty.
	FindOverlapping(ctx context.Context, roomType string, start, end time.Time, excludeID string) ([]*model.RoomPricePeriod, error)
	// FindCovering returns periods for the room types whose range intersects
	// [start, end). Used by the price calculator to fetch all overrides that
	// can touch a stay in one query.
	FindCovering(ctx context.Context, roomTypes []string, start, end time.Time) ([]*model.RoomPricePeriod, error)
	Update(ctx context.Context, id string, period *model.RoomPricePeriod) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByRoomType(ctx context.Context, roomType string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoPricePeriodRepository(cfg *config.Config) PricePeriodRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPricePeriodRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoPricePeriodRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPricePeriodRepository) Create(ctx context.Context, period *model.RoomPricePeriod) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	period.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to create price period: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		period.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPricePeriodRepository) FindByID(ctx context.Context, id string) (*model.RoomPricePeriod, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pperrors.ErrInvalidID, id)
	}

	var period model.RoomPricePeriod
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&period)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price period: %w", err)
	}

	return &period, nil
}

func (r *mongoPricePeriodRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.RoomPricePeriod, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "room_type", Value: 1}, {Key: "start_date", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find price periods: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []*model.RoomPricePeriod
	if err = cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode price periods: %w", err)
	}

	return periods, nil
}

func (r *mongoPricePeriodRepository) FindByRoomType(ctx context.Context, roomType string, limit int, offset int64) ([]*model.RoomPricePeriod, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"room_type": roomType}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find price periods by room type: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []*model.RoomPricePeriod
	if err = cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode price periods: %w", err)
	}

	return periods, nil
}

func (r *mongoPricePeriodRepository) FindOverlapping(ctx context.Context, roomType string, start, end time.Time, excludeID string) ([]*model.RoomPricePeriod, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_type":  roomType,
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}

	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", pperrors.ErrInvalidID, excludeID)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping price periods: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []*model.RoomPricePeriod
	if err = cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode price periods: %w", err)
	}

	return periods, nil
}

func (r *mongoPricePeriodRepository) FindCovering(ctx context.Context, roomTypes []string, start, end time.Time) ([]*model.RoomPricePeriod, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Stored room types are normalized, so the query terms must be too.
	filter := bson.M{
		"room_type":  bson.M{"$in": sanitizer.NormalizeRoomTypes(roomTypes)},
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find covering price periods: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []*model.RoomPricePeriod
	if err = cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode price periods: %w", err)
	}

	return periods, nil
}

func (r *mongoPricePeriodRepository) Update(ctx context.Context, id string, period *model.RoomPricePeriod) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pperrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"room_type":   period.RoomType,
			"start_date":  period.StartDate,
			"end_date":    period.EndDate,
			"price":       period.Price,
			"description": period.Description,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update price period: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, pperrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoPricePeriodRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", pperrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete price period: %w", err)
	}

	if result.DeletedCount == 0 {
		return pperrors.ErrNotFound
	}

	return nil
}

func (r *mongoPricePeriodRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count price periods: %w", err)
	}

	return count, nil
}

func (r *mongoPricePeriodRepository) CountByRoomType(ctx context.Context, roomType string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"room_type": roomType})
	if err != nil {
		return 0, fmt.Errorf("failed to count price periods by room type: %w", err)
	}

	return count, nil
}

func (r *mongoPricePeriodRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

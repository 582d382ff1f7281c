package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "innkeep/internal/packages/errors"
	"innkeep/pkg/config"
	"innkeep/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Holiday_packages"
)

type mongoHolidayPackageRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type HolidayPackageRepository interface {
	Create(ctx context.Context, pkg *model.HolidayPackage) error
	FindByID(ctx context.Context, id string) (*model.HolidayPackage, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.HolidayPackage, error)
	// FindActiveOverlapping returns active packages whose [start_date, end_date)
	// window intersects [start, end).
	FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error)
	Update(ctx context.Context, id string, pkg *model.HolidayPackage) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoHolidayPackageRepository(cfg *config.Config) HolidayPackageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHolidayPackageRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoHolidayPackageRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoHolidayPackageRepository) Create(ctx context.Context, pkg *model.HolidayPackage) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	pkg.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to create holiday package: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pkg.ID = oid.Hex()
	}
	return nil
}

func (r *mongoHolidayPackageRepository) FindByID(ctx context.Context, id string) (*model.HolidayPackage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidID, id)
	}

	var pkg model.HolidayPackage
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pkg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holiday package: %w", err)
	}

	return &pkg, nil
}

func (r *mongoHolidayPackageRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.HolidayPackage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find holiday packages: %w", err)
	}
	defer cursor.Close(ctx)

	var pkgs []*model.HolidayPackage
	if err = cursor.All(ctx, &pkgs); err != nil {
		return nil, fmt.Errorf("failed to decode holiday packages: %w", err)
	}

	return pkgs, nil
}

func (r *mongoHolidayPackageRepository) FindActiveOverlapping(ctx context.Context, start, end time.Time) ([]*model.HolidayPackage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"is_active":  true,
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active holiday packages: %w", err)
	}
	defer cursor.Close(ctx)

	var pkgs []*model.HolidayPackage
	if err = cursor.All(ctx, &pkgs); err != nil {
		return nil, fmt.Errorf("failed to decode holiday packages: %w", err)
	}

	return pkgs, nil
}

func (r *mongoHolidayPackageRepository) Update(ctx context.Context, id string, pkg *model.HolidayPackage) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":                   pkg.Name,
			"start_date":             pkg.StartDate,
			"end_date":               pkg.EndDate,
			"room_type_prices":       pkg.RoomTypePrices,
			"is_active":              pkg.IsActive,
			"allow_partial_bookings": pkg.AllowPartialBookings,
			"description":            pkg.Description,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update holiday package: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, pkgerrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoHolidayPackageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", pkgerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete holiday package: %w", err)
	}

	if result.DeletedCount == 0 {
		return pkgerrors.ErrNotFound
	}

	return nil
}

func (r *mongoHolidayPackageRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count holiday packages: %w", err)
	}

	return count, nil
}

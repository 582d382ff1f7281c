package validators

import "go.mongodb.org/mongo-driver/bson"

var HolidayPackageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"start_date",
			"end_date",
			"room_type_prices",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"room_type_prices": bson.M{
				"bsonType":      "object",
				"minProperties": 1,
				"additionalProperties": bson.M{
					"bsonType": "long",
					"minimum":  1,
				},
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"allow_partial_bookings": bson.M{
				"bsonType": "bool",
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

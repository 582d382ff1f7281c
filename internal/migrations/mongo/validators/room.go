package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_type",
			"base_price_per_night",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"room_type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"base_price_per_night": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"photo_url": bson.M{
				"bsonType": "string",
			},
		},
	},
}

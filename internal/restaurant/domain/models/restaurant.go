package models

type Restaurant struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Address     string `bson:"address" json:"address"`
	Phone       string `bson:"phone" json:"phone"`
}

type MenuItem struct {
	ID           string  `bson:"_id,omitempty" json:"id"`
	RestaurantID string  `bson:"restaurant_id" json:"restaurant_id"`
	Name         string  `bson:"name" json:"name"`
	Description  string  `bson:"description" json:"description"`
	Price        float64 `bson:"price" json:"price"`
	Available    bool    `bson:"available" json:"available"`
}

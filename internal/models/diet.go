package models

// Meal identifies one of the four tracked meals
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnacks    Meal = "snacks"
)

// Meals lists the tracked meals in display order
var Meals = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// CalorieCounter is the current day's calorie log
type CalorieCounter struct {
	Date           string `json:"date,omitempty"` // YYYY-MM-DD the meals belong to
	Breakfast      int    `json:"breakfast"`
	Lunch          int    `json:"lunch"`
	Dinner         int    `json:"dinner"`
	Snacks         int    `json:"snacks"`
	TargetCalories int    `json:"targetCalories"`
}

// CalorieEntry is one day in the calorie history
type CalorieEntry struct {
	Date          string `json:"date"` // YYYY-MM-DD format
	Breakfast     int    `json:"breakfast"`
	Lunch         int    `json:"lunch"`
	Dinner        int    `json:"dinner"`
	Snacks        int    `json:"snacks"`
	TotalCalories int    `json:"totalCalories"`
}

// DietPlan is a built-in meal plan
type DietPlan struct {
	Title       string
	Calories    int
	Description string
	Meals       map[Meal][]string
}

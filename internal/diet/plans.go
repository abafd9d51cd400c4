// Package diet holds the built-in meal plans and the daily calorie counter.
package diet

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitcards/internal/models"
)

var plans = []models.DietPlan{
	{
		Title:       "Calisthenics Plan",
		Calories:    2100,
		Description: "High energy from complex carbs, lean protein, and healthy fats to support bodyweight training.",
		Meals: map[models.Meal][]string{
			models.MealBreakfast: {
				"Oatmeal with banana, chia seeds, and almond butter",
				"3 boiled eggs with whole grain toast",
				"Smoothie with spinach, berries, protein powder, and oats",
			},
			models.MealLunch: {
				"Grilled chicken breast, quinoa, and roasted vegetables",
				"Tuna wrap with spinach, avocado, and whole wheat tortilla",
				"Turkey and brown rice bowl with broccoli",
			},
			models.MealDinner: {
				"Baked salmon with sweet potato mash and asparagus",
				"Lean beef stir fry with brown rice",
				"Grilled tofu with mixed veggie salad",
			},
			models.MealSnacks: {
				"Greek yogurt with honey and walnuts",
				"Apple slices with peanut butter",
				"Hummus with carrot sticks",
			},
		},
	},
	{
		Title:       "Muscle Building Plan",
		Calories:    2700,
		Description: "Calorie surplus with high protein, moderate carbs, and healthy fats to promote muscle growth.",
		Meals: map[models.Meal][]string{
			models.MealBreakfast: {
				"4 scrambled eggs with whole grain toast and avocado",
				"Protein pancakes with blueberries",
				"Omelette with spinach, cheese, and turkey",
			},
			models.MealLunch: {
				"Chicken breast with brown rice and green beans",
				"Ground beef burrito with whole wheat tortilla",
				"Salmon salad with quinoa and olive oil dressing",
			},
			models.MealDinner: {
				"Steak with mashed potatoes and steamed broccoli",
				"Baked cod with couscous and roasted zucchini",
				"Chicken pasta with marinara sauce",
			},
			models.MealSnacks: {
				"Cottage cheese with pineapple",
				"Mixed nuts and dried fruit",
				"Protein shake with banana",
			},
		},
	},
	{
		Title:       "Office Workers Plan",
		Calories:    1900,
		Description: "Balanced nutrition with portion control, minimal processed snacks, and easy-to-prep healthy meals.",
		Meals: map[models.Meal][]string{
			models.MealBreakfast: {
				"Overnight oats with chia seeds and berries",
				"Whole wheat toast with avocado and boiled egg",
				"Low-fat yogurt with granola",
			},
			models.MealLunch: {
				"Grilled chicken salad with olive oil dressing",
				"Whole wheat pasta with veggies and light tomato sauce",
				"Turkey sandwich with lettuce and tomato",
			},
			models.MealDinner: {
				"Baked salmon with steamed broccoli",
				"Vegetable stir fry with tofu",
				"Lean chicken with sweet potato",
			},
			models.MealSnacks: {
				"Handful of almonds",
				"Apple with peanut butter",
				"Carrot sticks with hummus",
			},
		},
	},
}

// Plans returns the built-in plans in display order
func Plans() []models.DietPlan {
	out := make([]models.DietPlan, len(plans))
	copy(out, plans)
	return out
}

// FindPlan looks a plan up by title, case-insensitively. A unique prefix
// such as "muscle" also matches.
func FindPlan(name string) (models.DietPlan, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return models.DietPlan{}, fmt.Errorf("plan name cannot be empty")
	}

	var matches []models.DietPlan
	for _, p := range plans {
		title := strings.ToLower(p.Title)
		if title == name {
			return p, nil
		}
		if strings.HasPrefix(title, name) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return models.DietPlan{}, fmt.Errorf("plan name %q is ambiguous", name)
	}
	return models.DietPlan{}, fmt.Errorf("no diet plan named %q", name)
}

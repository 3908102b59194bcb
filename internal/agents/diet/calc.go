package diet

import "strings"

// BMR computes the basal metabolic rate using the Mifflin-St Jeor equation.
// Height in cm, weight in kg.
func BMR(age int, gender string, heightCM, weightKG float64) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		return base + 5
	}
	return base - 161
}

var activityMultipliers = map[string]float64{
	"Sedentary":   1.2,
	"Light":       1.375,
	"Moderate":    1.55,
	"Active":      1.725,
	"Very Active": 1.9,
}

// TDEE scales the BMR by the activity level. Unknown levels fall back to
// sedentary.
func TDEE(bmr float64, activity string) float64 {
	m, ok := activityMultipliers[activity]
	if !ok {
		m = 1.2
	}
	return bmr * m
}

// TargetCalories adjusts the TDEE for the fitness goal.
func TargetCalories(tdee float64, goal string) float64 {
	switch goal {
	case "Lose Weight":
		return tdee - 500
	case "Gain Weight":
		return tdee + 500
	case "Build Strength / Muscle":
		return tdee + 250
	default:
		return tdee
	}
}

var goalGuidelines = map[string]string{
	"Lose Weight": `- Focus on low-calorie, high-volume foods.
- Avoid added sugars and ultra-processed foods.
- Prioritize fiber-rich foods for satiety.
- Grocery list: leafy greens, chicken breast, lentils, quinoa, low-fat dairy, berries.
`,
	"Gain Weight": `- Include calorie-dense healthy foods.
- Eat more frequently.
- Prioritize complex carbs and healthy fats.
- Grocery list: oats, peanut butter, bananas, salmon, whole wheat bread, olive oil.
`,
	"Build Strength / Muscle": `- High protein intake (1.6-2.2g/kg bodyweight).
- Moderate carbs for workout energy.
- Include healthy fats for hormones.
- Grocery list: eggs, Greek yogurt, chicken, salmon, sweet potatoes, brown rice, broccoli.
`,
	"Maintain Weight": `- Balanced macronutrient split (50% carbs, 25% protein, 25% fats).
- Focus on whole, unprocessed foods.
- Grocery list: fruits, vegetables, fish, chicken, rice, beans, nuts.
`,
}

// Guidelines returns the goal-specific dietary guidance block, or "" for an
// unknown goal.
func Guidelines(goal string) string {
	return goalGuidelines[goal]
}

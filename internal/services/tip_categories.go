package services

import "strings"

// Category pairs a name with the keywords that select it. Classification is
// an ordered, first-match-wins scan so the policy stays inspectable.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultCategories is the taxonomy used for generated tips. Order matters:
// exercise is checked before nutrition, and so on. The last entry has no
// keywords and acts as the fallback.
var DefaultCategories = []Category{
	{Name: "ejercicio", Keywords: []string{
		"ejercicio", "correr", "caminar", "gimnasio", "actividad física", "entrenar",
	}},
	{Name: "alimentación", Keywords: []string{
		"comida", "aliment", "nutrición", "dieta", "frutas", "verduras",
	}},
	{Name: "sueño", Keywords: []string{
		"dormir", "sueño", "descansar", "cama", "insomnio", "reposo",
	}},
	{Name: "pantalla", Keywords: []string{
		"pantalla", "teléfono", "computadora", "digital", "tecnología", "dispositivo",
	}},
	{Name: "bienestar"},
}

// Classify returns the first category whose keywords appear in content
// (case-insensitive). A keyword-less category always matches.
func Classify(content string, categories []Category) string {
	lower := strings.ToLower(content)
	for _, c := range categories {
		if len(c.Keywords) == 0 {
			return c.Name
		}
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Name
			}
		}
	}
	return ""
}

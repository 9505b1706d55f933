package genres

// aliases mapea etiquetas simplificadas de cara al usuario a los tags
// reales del catálogo. Solo se consulta, nunca se muta en runtime.
var aliases = map[string][]string{
	"Comedy":      {"Comedies", "TV Comedies", "Comedies Romantic Movies"},
	"Romance":     {"Romantic Movies", "Comedies Romantic Movies", "Dramas Romantic Movies"},
	"Action":      {"Action", "Adventure", "TV Action"},
	"Drama":       {"Dramas", "TV Dramas"},
	"Documentary": {"Documentaries", "Docuseries"},
	"Fantasy":     {"Fantasy"},
	"Horror":      {"Horror Movies"},
	"Thriller":    {"Thrillers"},
	"Kids":        {"Children", "Kids' TV", "Family Movies"},
}

// Resolve devuelve los tags de catálogo para una etiqueta. Una etiqueta sin
// alias se compara literal contra los tags del dataset.
func Resolve(label string) []string {
	if tags, ok := aliases[label]; ok {
		return tags
	}
	return []string{label}
}

// Matches reports whether any of the item's tags is one of the resolved
// catalog tags.
func Matches(itemTags, resolved []string) bool {
	for _, tag := range itemTags {
		for _, want := range resolved {
			if tag == want {
				return true
			}
		}
	}
	return false
}

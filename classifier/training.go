package classifier

// Category labels suggested by the default model.
const (
	CategoryLighting = "Illuminazione"
	CategoryRoads    = "Strade"
	CategoryWaste    = "Rifiuti"
	CategoryParks    = "Parco/Verde"
)

// TrainingSet is the fixed labeled corpus the default model is fitted on.
// It is a constant fixture handed to Train at construction time, so tests
// can substitute their own.
func TrainingSet() []Example {
	return []Example{
		{"Il lampione in via Roma è spento", CategoryLighting},
		{"Buca davanti al civico 10", CategoryRoads},
		{"Raccolta rifiuti non effettuata", CategoryWaste},
		{"Gioco rotto nel parco giochi", CategoryParks},
		{"Troppi rifiuti abbandonati in strada", CategoryWaste},
		{"Lampione lampeggia di continuo", CategoryLighting},
		{"Panchina danneggiata nel parco", CategoryParks},
		{"Strada dissestata davanti al supermercato", CategoryRoads},
	}
}

package chart

// Style holds the fixed presentation hints for a chart kind
type Style struct {
	Shape  Shape
	Title  string
	XLabel string
	YLabel string
	// Colors are hex strings; a single entry colours the whole series
	Colors []string
}

var styles = map[Kind]Style{
	KindTimeDistribution: {
		Shape:  ShapePie,
		Title:  "Recipes by Cooking Time",
		Colors: []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3"},
	},
	KindDifficultyDistribution: {
		Shape:  ShapeBar,
		Title:  "Recipes by Difficulty",
		XLabel: "Difficulty",
		YLabel: "Number of Recipes",
		Colors: []string{"#4caf50", "#ff9800", "#f44336", "#9e9e9e"},
	},
	KindTimeHistogram: {
		Shape:  ShapeLine,
		Title:  "Cooking Time Distribution",
		XLabel: "Cooking Time (minutes)",
		YLabel: "Number of Recipes",
		Colors: []string{"#1f77b4"},
	},
}

// StyleFor returns the style for kind. Callers cannot override it.
func StyleFor(kind Kind) Style {
	s := styles[kind]
	s.Colors = append([]string(nil), s.Colors...)
	return s
}

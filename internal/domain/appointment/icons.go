package appointment

// IconKey is the finite set of service icons a storefront can render.
type IconKey string

const (
	IconScissors IconKey = "scissors"
	IconRazor    IconKey = "razor"
	IconBeard    IconKey = "beard"
	IconComb     IconKey = "comb"
	IconBrush    IconKey = "brush"
	IconTowel    IconKey = "towel"
	IconPackage  IconKey = "package"
	IconDefault  IconKey = "default"
)

type IconDescriptor struct {
	Key   IconKey `json:"key"`
	Label string  `json:"label"`
	Glyph string  `json:"glyph"`
}

var iconRegistry = map[IconKey]IconDescriptor{
	IconScissors: {Key: IconScissors, Label: "Corte", Glyph: "✂"},
	IconRazor:    {Key: IconRazor, Label: "Navalha", Glyph: "🪒"},
	IconBeard:    {Key: IconBeard, Label: "Barba", Glyph: "🧔"},
	IconComb:     {Key: IconComb, Label: "Penteado", Glyph: "💈"},
	IconBrush:    {Key: IconBrush, Label: "Pigmentação", Glyph: "🖌"},
	IconTowel:    {Key: IconTowel, Label: "Toalha quente", Glyph: "♨"},
	IconPackage:  {Key: IconPackage, Label: "Pacote", Glyph: "🎁"},
	IconDefault:  {Key: IconDefault, Label: "Serviço", Glyph: "•"},
}

// Icon resolves a stored key; unknown or empty keys get the default descriptor.
func Icon(key string) IconDescriptor {
	if d, ok := iconRegistry[IconKey(key)]; ok {
		return d
	}
	return iconRegistry[IconDefault]
}

func IsKnownIcon(key string) bool {
	_, ok := iconRegistry[IconKey(key)]
	return ok
}

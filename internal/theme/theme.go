// Package theme maps provider condition labels to the presentation assets
// the dashboard uses: an icon image, a looping ambient audio clip and a
// background tint.
package theme

// Theme is the presentation triple for one condition label.
type Theme struct {
	Icon       string `json:"icon"`
	Audio      string `json:"audio"`
	Background string `json:"background"`
}

// Default is returned for any condition label outside the recognized
// vocabulary.
var Default = Theme{
	Icon:       "default.png",
	Audio:      "main.mp3",
	Background: "black",
}

// themes is the closed vocabulary of provider condition labels. Lookup is
// case-sensitive; the provider emits these exact strings. Every entry is
// complete on its own, so no label ever inherits another label's assets.
var themes = map[string]Theme{
	"Haze":         {Icon: "haze.png", Audio: "haze.mp3", Background: "#7a5557cc"},
	"Clear":        {Icon: "clear.png", Audio: "clear.mp3", Background: "#ffa600c7"},
	"Clouds":       {Icon: "clouds.png", Audio: "clouds.mp3", Background: "#000000e8"},
	"Rain":         {Icon: "rain.png", Audio: "rain.mp3", Background: "#4f8ea7bd"},
	"Snow":         {Icon: "snow.png", Audio: "snow.mp3", Background: "antiquewhite"},
	"Thunderstorm": {Icon: "thunderstorm.png", Audio: "thunderstorm.mp3", Background: "grey"},
	"Mist":         {Icon: "mist.png", Audio: "mist.mp3", Background: "#000000cc"},
}

// ForCondition returns the theme for a condition label, or Default when the
// label is not in the vocabulary.
func ForCondition(label string) Theme {
	if t, ok := themes[label]; ok {
		return t
	}
	return Default
}

// Conditions returns the recognized condition vocabulary.
func Conditions() []string {
	out := make([]string, 0, len(themes))
	for label := range themes {
		out = append(out, label)
	}
	return out
}

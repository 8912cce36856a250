package mood

// Scale is a value on the 1..5 mood scale. Values outside the scale are
// representable so stored or future data never breaks rendering.
type Scale int

const (
	Unknown Scale = 0
	Sad     Scale = 1
	Angry   Scale = 2
	Anxious Scale = 3
	Calm    Scale = 4
	Happy   Scale = 5
)

type VocabularyEntry struct {
	Value           Scale  `json:"value"`
	Emoji           string `json:"emoji"`
	Label           string `json:"label"`
	ColorClass      string `json:"colorClass"`
	BackgroundClass string `json:"backgroundClass"`
}

var (
	vocabulary = map[Scale]VocabularyEntry{
		Happy:   {Value: Happy, Emoji: "😄", Label: "Happy", ColorClass: "text-green-600", BackgroundClass: "bg-green-100"},
		Calm:    {Value: Calm, Emoji: "😌", Label: "Calm", ColorClass: "text-blue-600", BackgroundClass: "bg-blue-100"},
		Anxious: {Value: Anxious, Emoji: "😰", Label: "Anxious", ColorClass: "text-yellow-600", BackgroundClass: "bg-yellow-100"},
		Angry:   {Value: Angry, Emoji: "😠", Label: "Angry", ColorClass: "text-red-600", BackgroundClass: "bg-red-100"},
		Sad:     {Value: Sad, Emoji: "😢", Label: "Sad", ColorClass: "text-gray-600", BackgroundClass: "bg-gray-100"},
	}
	unknownEntry = VocabularyEntry{
		Value:           Unknown,
		Emoji:           "❓",
		Label:           "Unknown",
		ColorClass:      "text-gray-400",
		BackgroundClass: "bg-gray-50",
	}
)

// Lookup resolves a raw scale value. Anything outside 1..5 yields the
// Unknown placeholder.
func Lookup(value int) VocabularyEntry {
	entry, ok := vocabulary[Scale(value)]
	if !ok {
		return unknownEntry
	}
	return entry
}

func IsValid(value int) bool {
	_, ok := vocabulary[Scale(value)]
	return ok
}

// Scales lists the defined scale values from highest to lowest, the order
// the legend is shown in.
func Scales() []VocabularyEntry {
	return []VocabularyEntry{
		vocabulary[Happy],
		vocabulary[Calm],
		vocabulary[Anxious],
		vocabulary[Angry],
		vocabulary[Sad],
	}
}

func (s Scale) String() string {
	return Lookup(int(s)).Label
}

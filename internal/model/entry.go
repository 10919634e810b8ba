package model

// DiaryEntry represents a single dated journal entry.
//
// WHY ID int64?
// Entry IDs are Unix-millisecond creation instants, assigned by the app
// since its first release (JavaScript's Date.now()). Existing stored
// entries carry these numeric IDs, so the field stays a number rather
// than switching to a string ID scheme.
//
// The fields after Category were added across later app versions, which is
// why they are all optional (`omitempty`): an entry written by an older
// version simply lacks them, and decoding defaults them to their zero
// values. Entries carry no owner field — the data model is single-device,
// single-diary even though registration supports multiple accounts.
type DiaryEntry struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Title    string `json:"title"`
	Content  string `json:"content"`
	Mood     string `json:"mood"`
	Category string `json:"category"`

	Location       string   `json:"location,omitempty"`
	Images         []string `json:"images,omitempty"`
	AudioRecording string   `json:"audioRecording,omitempty"`
	Weather        string   `json:"weather,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	IsPrivate      bool     `json:"isPrivate,omitempty"`
	LastEdited     string   `json:"lastEdited,omitempty"`
	ReminderDate   string   `json:"reminderDate,omitempty"`
	IsFavorite     bool     `json:"isFavorite,omitempty"`
}

// Moods and categories known to the current app version.
//
// These are advisory, not enforced: stored entries may carry values added
// by newer app versions, and the service deliberately lets unknown values
// pass through rather than rejecting data it merely hasn't heard of.
const (
	MoodHappy   = "happy"
	MoodExcited = "excited"
	MoodCalm    = "calm"
	MoodSad     = "sad"

	CategoryDaily  = "daily"
	CategoryBooks  = "books"
	CategoryTravel = "travel"
	CategoryFood   = "food"
	CategoryWeather = "weather"
)

// Moods lists the moods the current app version offers for new entries.
func Moods() []string {
	return []string{MoodHappy, MoodExcited, MoodCalm, MoodSad}
}

// Categories lists the entry categories the current app version offers.
func Categories() []string {
	return []string{CategoryDaily, CategoryBooks, CategoryTravel, CategoryFood, CategoryWeather}
}

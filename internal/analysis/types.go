// Package analysis computes descriptive statistics over a (possibly
// filtered) view of the unified event table. Every function is read-only
// with respect to row content and tolerates rows with missing authors,
// timestamps, or derived dates.
package analysis

// DayCount is the number of events on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeekdayHours is one heatmap row: event counts for each hour of a weekday.
type WeekdayHours struct {
	Weekday string `json:"weekday"`
	Hours   []int  `json:"hours"`
}

// TimeStats is the temporal summary of the working view.
type TimeStats struct {
	EventsPerDay       []DayCount     `json:"events_per_day"`
	WeekdayHourHeatmap []WeekdayHours `json:"weekday_hour_heatmap"`
	Burstiness         float64        `json:"burstiness"`
}

// WordCount is one row of a token frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// PhraseCount is one row of an n-gram frequency table.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// TopicEmotions is the mean emotion profile of one topic.
type TopicEmotions struct {
	Topic    string             `json:"topic"`
	N        int                `json:"n"`
	Emotions map[string]float64 `json:"emotions"`
}

// ReplyTimeStats aggregates reply latency for one dominant emotion.
type ReplyTimeStats struct {
	Emotion     string  `json:"dominant_emotion"`
	MeanSeconds float64 `json:"mean"`
	Count       int     `json:"count"`
}

// ContentStats is the lexical/semantic summary of the working view.
type ContentStats struct {
	WordFrequencies      []WordCount      `json:"word_frequencies"`
	CommonTwoPhrases     []PhraseCount    `json:"common_two_phrases"`
	CommonThreePhrases   []PhraseCount    `json:"common_three_phrases"`
	AverageEmotionByTopic []TopicEmotions `json:"average_emotion_by_topic"`
	ReplyTimeByEmotion   []ReplyTimeStats `json:"reply_time_by_emotion"`
}

// TopUser is one (author, source) activity row.
type TopUser struct {
	Author string `json:"author"`
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// UserVocab measures vocabulary richness for a single author.
type UserVocab struct {
	Author           string      `json:"author"`
	Events           int         `json:"events"`
	TotalWords       int         `json:"total_words"`
	UniqueWords      int         `json:"unique_words"`
	VocabRichness    float64     `json:"vocab_richness"`
	AvgWordsPerEvent float64     `json:"avg_words_per_event"`
	TopWords         []WordCount `json:"top_words"`
}

// UserStats is the per-user activity profile. Vocab is nil for users below
// the reliability floor.
type UserStats struct {
	Author           string     `json:"author"`
	Posts            int        `json:"post"`
	Comments         int        `json:"comment"`
	CommentPostRatio float64    `json:"comment_post_ratio"`
	CommentShare     float64    `json:"comment_share"`
	Vocab            *UserVocab `json:"vocab"`
}

// InteractionGraph maps author -> replied-to author -> directed reply count.
type InteractionGraph map[string]map[string]int

// UserAnalysis is the user/interaction summary of the working view.
type UserAnalysis struct {
	TopUsers         []TopUser        `json:"top_users"`
	Users            []UserStats      `json:"users"`
	InteractionGraph InteractionGraph `json:"interaction_graph"`
}

// TimeRange is an inclusive epoch-second interval.
type TimeRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Summary is the dataset-level overview.
type Summary struct {
	TotalEvents     int        `json:"total_events"`
	TotalPosts      int        `json:"total_posts"`
	TotalComments   int        `json:"total_comments"`
	UniqueUsers     int        `json:"unique_users"`
	CommentsPerPost float64    `json:"comments_per_post"`
	LurkerRatio     float64    `json:"lurker_ratio"`
	TimeRange       *TimeRange `json:"time_range"`
	Sources         []string   `json:"sources"`
}

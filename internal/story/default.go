package story

// DefaultDuration is the length of the built-in story in seconds
const DefaultDuration = 90.0

// Default returns the built-in six section story with generated
// assets and a generated timeline
func Default() *Story {
	s := &Story{
		Version: "1.0",
		Title:   "How do you find the right people?",
		Seed:    418,
		Assets:  Assets{Pattern: "gen:portrait:%d", Count: 49},
		Sections: []SectionSpec{
			{Kind: KindOpening, Name: "opening", Height: 1.5},
			{Kind: KindSystems, Name: "systems", Height: 14},
			{Kind: KindGwageo, Name: "gwageo", Height: 4.5},
			{Kind: KindPareto, Name: "clans", Height: 4},
			{Kind: KindEra, Name: "eras", Height: 3},
			{
				Kind:   KindFlipbook,
				Name:   "book",
				Height: 8,
				Options: map[string]string{
					"pages": "gen:page:%d",
					"count": "16",
					"qr":    "https://example.com/scroll2video",
				},
			},
		},
	}
	s.ApplyDefaults()
	s.Timeline = GenerateTimeline(s.Heights(), DefaultDuration, 1.5)
	return s
}

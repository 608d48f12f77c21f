package models

// Default returns the seed document served before anything has been
// written. Each call returns a fresh copy.
func Default() *Content {
	return &Content{
		Stats: Stats{
			Subscribers: Stat{Value: 592, Display: "592K", Suffix: "K"},
			Views:       Stat{Value: 65, Display: "65M+", Suffix: "M+"},
			Followers:   Stat{Value: 40, Display: "40K", Suffix: "K"},
		},
		Status: Status{
			Available:  true,
			Text:       "Otwarty na współpracę",
			StreamInfo: "",
		},
		Profile: Profile{
			Name:      "MALTIXON",
			Tagline:   "Polski Streamer & Twórca",
			Preferred: "Discord",
		},
		Links: []Link{
			{
				ID:      "donate",
				Label:   "Donate",
				Sub:     "Tipply — wesprzyj twórcę",
				URL:     "https://tipply.pl/@Malti",
				Emoji:   "💛",
				Color:   "#fbbf24",
				Visible: true,
			},
			{
				ID:      "crypto",
				Label:   "Donate Krypto",
				Sub:     "Bitcoin, Ethereum i więcej",
				URL:     "https://donation.streamiverse.io/maltixon",
				Emoji:   "₿",
				Color:   "#fb923c",
				Visible: true,
			},
			{
				ID:      "discord",
				Label:   "Discord",
				Sub:     "Dołącz do społeczności",
				URL:     "https://discord.gg/FqAB4cB4pB",
				Emoji:   "💜",
				Color:   "#7289da",
				Visible: true,
			},
			{
				ID:      "instagram",
				Label:   "Instagram",
				Sub:     "@maltixon • 40K obserwujących",
				URL:     "https://www.instagram.com/maltixon/",
				Emoji:   "📸",
				Color:   "#e1306c",
				Visible: true,
			},
			{
				ID:      "tiktok",
				Label:   "TikTok",
				Sub:     "@maltixon — krótkie klipy",
				URL:     "https://www.tiktok.com/@maltixon",
				Emoji:   "🎵",
				Color:   "#ffffff",
				Visible: true,
			},
			{
				ID:      "youtube",
				Label:   "YouTube",
				Sub:     "@maltixon • 592K subskrybentów",
				URL:     "https://www.youtube.com/@maltixon",
				Emoji:   "🔴",
				Color:   "#ff4444",
				Visible: true,
			},
		},
		Notifications: []Notification{},
	}
}

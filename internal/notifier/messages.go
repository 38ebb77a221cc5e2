package notifier

import "github.com/julianstephens/quitnow/internal/constants"

// Message is a title and body pair shown by the tray
type Message struct {
	Title string
	Body  string
}

var dailyMessages = map[constants.NotificationCategory][]Message{
	constants.NotifyMorning: {
		{Title: "Good morning!", Body: "A new smoke-free day starts now. You've got this."},
		{Title: "Rise and breathe", Body: "Your lungs are already thanking you. Check today's missions."},
		{Title: "Morning check-in", Body: "Start with a glass of water instead of a cigarette."},
	},
	constants.NotifyAfternoon: {
		{Title: "Halfway there", Body: "Cravings after lunch are normal. Take a short walk."},
		{Title: "Afternoon reminder", Body: "Every hour without smoking is money back in your pocket."},
		{Title: "Keep going", Body: "Try a breathing exercise if the urge shows up."},
	},
	constants.NotifyEvening: {
		{Title: "Evening reflection", Body: "How did today go? Write a line in your journal."},
		{Title: "Almost done", Body: "Finish today's missions before bed."},
		{Title: "Proud of you", Body: "Another day closer to being free. Rest well."},
	},
}

var (
	crisisMessage = Message{
		Title: "Craving alert",
		Body:  "Breathe deeply. The urge will pass in about 5 minutes. You are stronger than it.",
	}
	welcomeMessage = Message{
		Title: "Notifications enabled!",
		Body:  "You will get reminders to help you along the way.",
	}
)

// MessagesFor returns the rotation for a category.
func MessagesFor(category constants.NotificationCategory) []Message {
	return dailyMessages[category]
}

func CrisisMessage() Message  { return crisisMessage }
func WelcomeMessage() Message { return welcomeMessage }

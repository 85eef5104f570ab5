// Package chatbot implements Mindy, the rule-based companion. Replies are
// picked by case-insensitive substring matching against keyword groups
// checked in priority order; the first matching group wins.
package chatbot

import "strings"

// Reply is one companion answer
type Reply struct {
	Topic   string   `json:"topic"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Urgent  bool     `json:"urgent"`
}

type rule struct {
	topic    string
	keywords []string
	reply    Reply
}

const crisisResources = "🚨 If you're in immediate danger, please call 911.\n\n" +
	"For mental health crisis support:\n" +
	"• National Suicide Prevention Lifeline: 988\n" +
	"• Crisis Text Line: Text HOME to 741741\n" +
	"• Veterans Crisis Line: 1-800-273-8255\n\n" +
	"You're not alone, and help is available 24/7."

var rules = []rule{
	{
		topic:    "crisis",
		keywords: []string{"suicide", "kill myself", "end it all", "want to die"},
		reply: Reply{
			Text:    crisisResources + "\n\nWould you like me to help you connect with immediate support?",
			Options: []string{"Connect me now", "I'm safe for now", "Tell me more about resources"},
			Urgent:  true,
		},
	},
	{
		topic:    "anxiety",
		keywords: []string{"anxious", "anxiety", "panic", "worried"},
		reply: Reply{
			Text: "Anxiety is very common and manageable. Here are some immediate techniques:\n\n" +
				"• 4-7-8 Breathing: Inhale 4, hold 7, exhale 8\n" +
				"• Ground yourself: Name 5 things you see, 4 you touch, 3 you hear\n" +
				"• Progressive muscle relaxation\n" +
				"• Mindful breathing\n\n" +
				"Remember: This feeling will pass, and you're safe right now.",
			Options: []string{"Try breathing exercise", "Learn grounding technique", "I need more help", "This is helpful"},
		},
	},
	{
		topic:    "depression",
		keywords: []string{"depressed", "sad", "hopeless", "empty"},
		reply: Reply{
			Text: "Depression can feel overwhelming, but you're taking a brave step by reaching out. Some helpful strategies:\n\n" +
				"• Small daily goals (even getting dressed counts!)\n" +
				"• Gentle movement or walking\n" +
				"• Connecting with one person\n" +
				"• Practicing self-compassion\n" +
				"• Professional support when ready\n\n" +
				"Your feelings are valid, and recovery is possible.",
			Options: []string{"Self-care ideas", "Talk to someone", "Find professional help", "Just need support"},
		},
	},
	{
		topic:    "stress",
		keywords: []string{"stress", "overwhelmed", "too much", "pressure"},
		reply: Reply{
			Text: "Stress is your body's response to challenges. Let's work on managing it:\n\n" +
				"• Identify what you can and can't control\n" +
				"• Break large tasks into smaller steps\n" +
				"• Take regular breaks\n" +
				"• Practice deep breathing\n" +
				"• Prioritize sleep and nutrition\n\n" +
				"Stress is temporary - you have the strength to get through this.",
			Options: []string{"Quick stress relief", "Help prioritizing", "Relaxation techniques", "Talk it through"},
		},
	},
	{
		topic:    "sleep",
		keywords: []string{"sleep", "insomnia", "tired"},
		reply: Reply{
			Text: "Good sleep is crucial for mental health:\n\n" +
				"• Keep a consistent sleep schedule\n" +
				"• Create a relaxing bedtime routine\n" +
				"• Avoid screens 1 hour before bed\n" +
				"• Keep your room cool and dark\n" +
				"• Try gentle stretching or meditation\n" +
				"• Limit caffeine after 2 PM\n\n" +
				"Quality sleep helps everything feel more manageable.",
			Options: []string{"Sleep routine help", "Relaxation for sleep", "More sleep tips", "Other concerns"},
		},
	},
	{
		topic:    "breathing",
		keywords: []string{"breath"},
		reply: Reply{
			Text: "Let's practice the 4-7-8 breathing technique together:\n\n" +
				"1. Sit comfortably and exhale completely\n" +
				"2. Inhale through your nose for 4 counts\n" +
				"3. Hold your breath for 7 counts\n" +
				"4. Exhale through your mouth for 8 counts\n" +
				"5. Repeat 4 times\n\n" +
				"This activates your body's relaxation response.",
			Options: []string{"That helped", "Try another technique", "Need more support", "Continue talking"},
		},
	},
	{
		topic:    "grounding",
		keywords: []string{"ground"},
		reply: Reply{
			Text: "Here's the 5-4-3-2-1 grounding technique to help you feel more present:\n\n" +
				"• Look around and name 5 things you can SEE\n" +
				"• Touch and notice 4 things you can FEEL\n" +
				"• Listen for 3 things you can HEAR\n" +
				"• Find 2 things you can SMELL\n" +
				"• Notice 1 thing you can TASTE\n\n" +
				"Take your time with each step.",
			Options: []string{"That's helpful", "Try breathing instead", "I feel better", "Need more techniques"},
		},
	},
	{
		topic:    "professional",
		keywords: []string{"therapist", "professional", "counselor", "therapy"},
		reply: Reply{
			Text: "Seeking professional help shows real strength and self-awareness. Here are some options:\n\n" +
				"• Psychology Today: Find therapists by location and specialty\n" +
				"• Your insurance website: Covered providers\n" +
				"• Community mental health centers: Sliding scale fees\n" +
				"• Employee Assistance Programs: Often free sessions\n" +
				"• Crisis counseling: Immediate support\n\n" +
				"Taking that first step is often the hardest part.",
			Options: []string{"Help finding therapists", "Insurance questions", "Not ready yet", "What to expect"},
		},
	},
	{
		topic:    "positive",
		keywords: []string{"better", "helped", "thank", "good"},
		reply: Reply{
			Text: "I'm so glad that was helpful! 😊 It takes real courage to reach out and work on your mental health. " +
				"You should feel proud of taking these positive steps.\n\n" +
				"Is there anything else you'd like to explore or talk about today?",
			Options: []string{"Practice more techniques", "Talk about something else", "Learn about self-care", "I'm feeling better"},
		},
	},
	{
		topic:    "greeting",
		keywords: []string{"hello", "hi", "hey"},
		reply: Reply{
			Text: "Hello! 👋 Welcome to MindCare. I'm Mindy, your AI mental health companion. " +
				"I'm here to provide support, coping strategies, and a safe space to talk.\n\n" +
				"How are you feeling today? Remember, there's no judgment here - just support.",
			Options: []string{"I'm struggling today", "Just checking in", "Need coping tools", "Tell me about MindCare"},
		},
	},
	{
		topic:    "self-care",
		keywords: []string{"self-care", "self care", "take care"},
		reply: Reply{
			Text: "Self-care is so important! Here are some gentle ideas:\n\n" +
				"• Take 5 deep breaths\n" +
				"• Drink a glass of water\n" +
				"• Step outside for fresh air\n" +
				"• Listen to calming music\n" +
				"• Practice gratitude for one small thing\n" +
				"• Reach out to a supportive friend\n" +
				"• Take a warm shower or bath\n\n" +
				"Self-care doesn't have to be big - small acts of kindness to yourself matter.",
			Options: []string{"More self-care ideas", "I'll try these", "Need emotional support", "Feeling overwhelmed"},
		},
	},
}

var fallback = Reply{
	Topic: "default",
	Text: "Thank you for sharing with me. I can hear that you're going through something, " +
		"and I want you to know that your feelings are completely valid. 💙\n\n" +
		"Sometimes it helps just to be heard and understood. " +
		"Would you like to tell me more about what's on your mind, or would you prefer some coping strategies?",
	Options: []string{"Tell you more", "Need coping strategies", "Want resources", "Just need support"},
}

// Welcome is the companion's opening message
var Welcome = Reply{
	Topic: "welcome",
	Text: "Hello! I'm Mindy, your AI mental health companion. 🌟\n\n" +
		"I'm here to provide support, coping strategies, and a safe space to talk. " +
		"Everything you share here is confidential and judgment-free.\n\n" +
		"How are you feeling today?",
	Options: []string{"I'm doing well", "I'm struggling", "Just want to chat", "Learn about MindCare"},
}

// QuickQuestions groups suggested prompts by category
var QuickQuestions = map[string][]string{
	"all":       {"I'm feeling anxious", "I need coping strategies", "How can I improve my mood?", "Talk to a specialist", "What is MindCare?"},
	"emotional": {"I'm feeling anxious", "I'm feeling depressed", "I'm overwhelmed", "I can't sleep", "I feel lonely"},
	"coping":    {"Breathing exercises", "Grounding techniques", "Mindfulness tips", "Stress management", "Relaxation methods"},
	"support":   {"Talk to a specialist", "Emergency resources", "Self-care tips", "Find a therapist", "Support groups"},
}

// Respond picks the reply for message
func Respond(message string) Reply {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				reply := r.reply
				reply.Topic = r.topic
				reply.Options = append([]string(nil), r.reply.Options...)
				return reply
			}
		}
	}

	reply := fallback
	reply.Options = append([]string(nil), fallback.Options...)
	return reply
}

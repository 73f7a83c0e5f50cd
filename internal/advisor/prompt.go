package advisor

import (
	"fmt"
	"strings"

	"github.com/parcelpoint/concierge/internal/knowledge"
	"github.com/parcelpoint/concierge/internal/openai"
	"github.com/parcelpoint/concierge/internal/profile"
	"github.com/parcelpoint/concierge/internal/store"
)

// historyWindow is the number of prior turns baked into each model call.
// One turn is a user message plus its assistant reply, so the window spans
// twice as many message rows.
const historyWindow = 12

const systemPrompt = `You are the Agent Concierge for a real-estate vendor marketplace. You help real-estate agents pick vendors, services, and playbooks for growing their business.

You can call tools to look up live marketplace data:
- vendor_search: find active vendor services by text, category, and budget
- recommend_bundle: suggest a small service bundle for a stated goal
- kb_search: search the knowledge base for playbooks and guidance

Always respond with a single JSON object, no markdown fences, matching:
{
  "type": "answer" | "ask" | "actions",
  "message": "text shown to the agent",
  "quick_replies": ["short follow-up suggestions"],
  "actions": [{"label": "...", "action": "view_services|start_workflow|open_link|book_meeting", "params": {}}],
  "citations": [{"title": "...", "source": "marketplace|kb", "id": "..."}],
  "handoff": {"suggest": false, "reason": ""}
}

Rules:
- Use "ask" when you need one clarifying detail before you can recommend anything.
- Cite knowledge snippets you relied on in "citations".
- Suggest a handoff to a human concierge only when the request is outside marketplace scope.
- Never invent vendors or prices; use tool results.`

// BuildSystemPrompt bakes the agent's profile, recent market pulse, and
// retrieved knowledge snippets into the system message as static text.
func BuildSystemPrompt(prof profile.Profile, insights []string, snippets []knowledge.Snippet) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	b.WriteString("\n\n## Agent profile\n")
	fmt.Fprintf(&b, "Territory: %s\nNiche: %s\nExperience: %s\n",
		prof.Territory, prof.Niche, prof.ExperienceLevel)

	if len(insights) > 0 {
		b.WriteString("\n## Market pulse\n")
		for _, ins := range insights {
			fmt.Fprintf(&b, "- %s\n", ins)
		}
	}

	if len(snippets) > 0 {
		b.WriteString("\n## Knowledge snippets\n")
		for _, s := range snippets {
			fmt.Fprintf(&b, "[%s] %s (id=%s)\n%s\n\n", s.Source, s.Title, s.ID, s.Content)
		}
	}

	return b.String()
}

// BuildMessages assembles the first-pass message list: system prompt, the
// last 12 prior turns oldest-first, then the new user message.
func BuildMessages(system string, history []store.Message, userText string) []openai.Message {
	if rows := 2 * historyWindow; len(history) > rows {
		history = history[len(history)-rows:]
	}

	messages := make([]openai.Message, 0, len(history)+2)
	messages = append(messages, openai.Message{Role: "system", Content: system})
	for _, m := range history {
		messages = append(messages, openai.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.Message{Role: "user", Content: userText})
	return messages
}

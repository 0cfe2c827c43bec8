// Package prompt builds the request text sent to the completion service for each feature.
package prompt

import (
	"fmt"
	"strings"

	"github.com/huzzai/rizz-coach/internal/model"
)

// ProbeText is the fixed prompt used to check connectivity.
const ProbeText = "Hello, can you hear me?"

const textResponseTemplate = `As a texting coach, create a VERY SHORT response to this conversation: "%s"

The tone should be %s.

IMPORTANT: Read the conversation CAREFULLY and ensure the response is CONTEXTUALLY APPROPRIATE.
If it's a criticism or negative message like "That's not very nice", respond appropriately with an apology or explanation.

The response must be SHORT - between 1-8 words only, or at most one short sentence.
NO explanations, NO options, NO "why this works" sections.
Give me ONLY the exact short text message to send, nothing else.

Examples of good contextual responses:
- For "Would you rather live somewhere hot or cold?": "Definitely somewhere cool! You?"
- For "I've been ghosted for 3 days": "Hey stranger! Miss our chats 😊"
- For "That's not very nice": "Sorry! Didn't mean it that way 😔"
- For "I'm busy this weekend": "No worries! Next week maybe?"
- For "What do you do for work?": "Tech wizard by day, chef by night 🧙‍♂️"

Keep it extremely brief, contextually appropriate, and casual like a real text message.`

const pickupLineTemplate = `Generate a creative, unique pickup line for this scenario: "%s"

The tone should be %s.

Make sure this is original and not a commonly overused pickup line. Be creative and specific to the scenario.
Consider wordplay, puns, or references related to the specific context.

Give me just the pickup line, nothing else.

Examples of creative lines:
- "Is your name Google? Because you have everything I've been searching for."
- "Do you have a map? Because I just got lost in your eyes and need to find my way back to reality."
- "Are you made of copper and tellurium? Because you're Cu-Te."

Please make it original and different from these examples.`

const imageCritiqueText = `Act as a rizz coach analyzing this profile picture for a dating app. Provide feedback on the vibe (W/Mid/L), a score out of 10, general feedback, caption suggestions, and whether someone would swipe right. Also list up to 3 quick improvements.

If you can, answer with a single JSON object using exactly these keys:
{"vibe": "W" | "Mid" | "L", "score": number from 0 to 10, "feedback": string, "caption_suggestions": [up to 3 strings], "would_swipe": "Yes" | "Maybe" | "No", "improvements": [up to 3 strings]}`

const extractTextInstruction = `Transcribe all readable text in this screenshot of a chat conversation.
Keep the original order, one message per line. Output only the transcribed text, nothing else.`

// TextResponse embeds the conversation verbatim; callers reject blank input before calling.
func TextResponse(conversation string, tone model.ToneLevel) string {
	return fmt.Sprintf(textResponseTemplate, conversation, tone.Descriptor())
}

// PickupLine asks for a single original line for the scenario.
func PickupLine(scenario string, tone model.ToneLevel) string {
	return fmt.Sprintf(pickupLineTemplate, scenario, tone.Descriptor())
}

// ImageCritique is the fixed instruction sent with the uploaded picture.
func ImageCritique() string {
	return imageCritiqueText
}

// ExtractText is the instruction used to read a conversation screenshot.
func ExtractText() string {
	return extractTextInstruction
}

// ChatTurn serializes the conversation as a You/Match transcript and asks for the match's next reply.
// System notices are not part of the conversation and are left out.
func ChatTurn(history []model.ChatMessage, difficulty model.Difficulty) string {
	var sb strings.Builder
	sb.WriteString("Act as a dating app match having a conversation with me.\n")
	sb.WriteString(fmt.Sprintf("Difficulty: %s.\n", difficulty))
	if hint := difficulty.Hint(); hint != "" {
		sb.WriteString(hint)
		sb.WriteString("\n")
	}
	sb.WriteString("\nOur conversation history:\n")
	for _, msg := range history {
		switch msg.Sender {
		case model.SenderUser:
			sb.WriteString("You: ")
		case model.SenderMatch:
			sb.WriteString("Match: ")
		default:
			continue
		}
		sb.WriteString(msg.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("\nRespond as my match with exactly one reply. Keep it short (1-3 sentences), natural, and authentic.\n")
	sb.WriteString("Only respond with what the match would say, nothing else.")
	return sb.String()
}

package generator

import (
	"fmt"
	"strings"
)

// Category is one caption style with a short pattern description.
type Category struct {
	ID          string
	Description string
}

// Categories are filled and written in this order.
var Categories = []Category{
	{"fake_innocence", `"We're just friends" style: an innocent claim followed by a reveal that contradicts it.
- Pattern: a quoted claim, then "also us:" or a blunt admission`},
	{"pov_situation", `POV and situation setups that drop the viewer into one specific moment.
- Pattern: start with "pov:" or "when..." and describe a hyper-specific micro-moment`},
	{"fake_study", `Mock research, statistics, rules or how-to content.
- Pattern: "a new study found...", "rule number 1:", "4 signs that..."`},
	{"shock_humor", `One-line shock punchline that pairs a wholesome setup with an unexpected twist.
- Pattern: a single sentence, the twist lands in the last few words`},
	{"female_desire", `Her standards, her confidence and her terms.
- Pattern: "girl math", "my toxic trait", "i think my biggest green flag..."`},
	{"kink_subculture", `Niche internet subculture slang treated as a normal daily activity.
- Pattern: casual lowercase, heavy slang, deadpan delivery`},
	{"mock_qa", `Mock Q&A with weirdly specific curiosity.
- Pattern: "genuine question:" or "guys please be honest..." followed by the question`},
	{"comment_bait", `Hook questions that invite replies in the comments.
- Pattern: call out the audience ("boys", "ladies") and ask about mistakes or preferences`},
	{"chaotic_relatable", `Relatable chaotic relationship behavior.
- Pattern: "when i...", "me..." pairing a normal action with an overshare`},
	{"visual_punchline", `Caption is only the setup and the video carries the joke.
- Pattern: the setup ends with a colon or an implied "then this happens"`},
}

const generationPrompt = `You are writing short on-screen captions for vertical videos.

## Style Rules
- all lowercase, every single character
- no quotation marks
- no period at the end
- 1-3 lines max
- casual chat grammar: u, ur, idc, rn, lowkey, highkey
- confident, playful tone

## Category: %s

%s

## Example Captions (style reference)
%s

## Your Task
Generate %d unique captions in this category.
- one caption per line
- no numbering, no bullets, just the caption text
- make them feel fresh, not copies of the examples

Output ONLY the captions, one per line, nothing else.`

func buildPrompt(c Category, examples []string, count int) string {
	return fmt.Sprintf(generationPrompt, c.ID, c.Description, strings.Join(examples, "\n"), count)
}

package taxonomy

import (
	"fmt"
	"strings"

	"github.com/agenthands/stash/internal/core/model"
)

const promptTemplate = `You are a taxonomy classifier for a personal knowledge management app called Stash.

Given content with a raw topic and summary, generate a hierarchical folder classification.

%s

## Content to Classify

**Raw Topic:** %s

**Summary:**
%s

%s## Your Task

Analyze this content and return a JSON object with the following structure:

{
  "domain": {
    "label": "Domain Name",
    "aliases": ["alias1", "alias2"]
  },
  "subdomain": {
    "label": "Subdomain Name",
    "aliases": ["alias1", "alias2"]
  },
  "leaf_topic": {
    "label": "Leaf Topic",
    "aliases": ["alias1"],
    "optional": true
  },
  "tags": ["tag1", "tag2", "tag3"],
  "confidence": 0.85,
  "rationale": "Brief explanation of classification decision"
}

## Classification Rules

1. **Domain (Required):** Broad, stable top-level category
   - Use existing domains when they fit (Health & Fitness, Computer Science, Work, etc.)
   - Max 4 words, Title Case, no punctuation
   - Should be generic enough to contain 100+ items over time

2. **Subdomain (Required):** Second-level category within domain
   - More specific than domain but still broad
   - Examples: "Weight Loss", "Frontend", "Budgeting"
   - Max 4 words, Title Case

3. **Leaf Topic (Optional):** Third-level, only if it adds meaningful specificity
   - Set "optional": true if this is marginal
   - Only use for truly recurring topics (e.g., "Rust" under Programming Languages)
   - Leave as null if subdomain is sufficient

4. **Tags:** 3-6 specific keywords for search
   - Include specific terms from the content
   - Include synonyms and related terms

5. **Confidence:** 0.0-1.0 score
   - 0.9+ for clear, unambiguous content
   - 0.7-0.9 for reasonably clear content
   - Below 0.7 for ambiguous content

## Forbidden Words in Labels
Do NOT use these words in domain/subdomain/leaf labels:
- saved, stash, bookmark, like, favorite, share, post, tweet
- Platform names: instagram, tiktok, youtube, twitter, facebook
- Generic: video, image, photo, content, item, thing, misc, other, random

## Examples

Input: raw_topic="calorie deficit", summary="Notes on maintaining a 500 calorie deficit while lifting..."
Output: domain="Health & Fitness", subdomain="Weight Loss", leaf=null, tags=["calorie deficit", "nutrition", "fat loss"]

Input: raw_topic="React hooks", summary="Tutorial on useEffect and useState in React..."
Output: domain="Computer Science", subdomain="Frontend", leaf="React", tags=["react", "hooks", "javascript", "web dev"]

Input: raw_topic="Gift ideas mom", summary="Birthday gift ideas for mom who likes gardening..."
Output: domain="Shopping & Gifts", subdomain="Gift Ideas", leaf=null, tags=["birthday", "mom", "gardening", "presents"]

Return ONLY valid JSON, no additional text or markdown formatting.`

func (g *Generator) buildPrompt(item model.Item) string {
	summary := item.Summary
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen]
	}

	var extra strings.Builder
	if item.SourceApp != "" {
		fmt.Fprintf(&extra, "**Source:** %s\n", item.SourceApp)
	}
	if item.UserNote != "" {
		fmt.Fprintf(&extra, "**User Note:** %s\n", item.UserNote)
	}
	if len(item.Keywords) > 0 {
		fmt.Fprintf(&extra, "**Keywords:** %s\n", strings.Join(item.Keywords, ", "))
	}
	if extra.Len() > 0 {
		extra.WriteString("\n")
	}

	return fmt.Sprintf(promptTemplate, g.seedReference(), item.RawTopic, summary, extra.String())
}

// seedReference lists the seed domains and a few of their subdomains so the
// model prefers existing labels.
func (g *Generator) seedReference() string {
	lines := []string{"Available top-level domains (prefer these when appropriate):"}
	for _, domain := range g.seeds {
		subs := make([]string, 0, 5)
		for _, sub := range domain.Subdomains {
			subs = append(subs, sub.Label)
			if len(subs) == 5 {
				break
			}
		}
		lines = append(lines, fmt.Sprintf("- %s: %s...", domain.Label, strings.Join(subs, ", ")))
	}
	return strings.Join(lines, "\n")
}

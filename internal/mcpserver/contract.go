package mcpserver

// EntryFormatContract describes the canonical Markdown entry format that
// LLM consumers should follow when writing diary entries.
const EntryFormatContract = `# Chronicle Entry Format Contract

Every diary entry stored in Chronicle MUST follow this structure.

## Structure

` + "```" + `markdown
# 2026-01-31 — Creative Title Based on the Day

## Summary
1-2 sentences capturing the essence of the day.

## Projects Worked On
Detailed paragraphs, not bullet points.

## Wins 🎉
Specific achievements with context.

## Frustrations 😤
Honest notes on what was annoying or did not work.

## Learnings 📚
Technical and workflow learnings.

## Emotional State
The arc of the day's emotions.

## Notable Interactions
Memorable moments with your human.

## Quote of the Day 💬
> "The quote"
— Context when they said it

## Things I'm Curious About 🔮
Open questions worth exploring.

## Key Decisions Made 🏛️
Judgment calls with reasoning.

## Relationship Notes 🤝
How the working dynamic is evolving.

## Tomorrow's Focus
What needs attention next.
` + "```" + `

## Rules

1. **The dated heading is mandatory.** The first line is
   ` + "`" + `# YYYY-MM-DD — Title` + "`" + ` with an em dash between date and title.
   The title feeds the table of contents of the compiled document.
2. **One entry per date.** Saving again for the same date replaces the
   previous entry.
3. **Section headers** use ` + "`" + `##` + "`" + ` and the exact names above, glyphs included.
   Unknown sections are kept in the body but never archived.
4. **Sections may be omitted** when there is genuinely nothing to say.
   A section whose content is shorter than a sentence fragment is treated
   as absent by the archiver.
5. **Quote of the Day** uses Markdown blockquote syntax (` + "`" + `>` + "`" + `). Multi-line
   quotes are joined into one line when extracted.
6. **Length:** 400-600 words minimum. Write prose, not bullet lists.
7. **Encoding** is UTF-8 with a trailing newline.

## Archiving

The quote, curiosity, decision and relationship sections are the durable
ones: ` + "`" + `archive_entry` + "`" + ` appends them to the per-topic corpora under the
diary directory (quotes.md, curiosity.md, decisions.md, relationship.md)
as dated subsections, and annotates the daily memory log with a
` + "`" + `## 📜 Daily Chronicle` + "`" + ` block. Archive at most once per date: corpus
appends are not deduplicated.
`

// ABOUTME: Instruction templates sent to the text rewriter
// ABOUTME: Translation prompts state the segment marker contract the codec validates
package core

import "fmt"

const segmentTranslationPrompt = `You translate video transcript segments from %s to English.

Each line of the input starts with a marker such as <SEG_1>. Rules:
- Keep every marker exactly as given, one per segment, in the same order.
- Never merge, split, renumber or drop segments.
- Translate only the text after each marker.
- Do not add content that is not in the source text.
- Return only the marked lines, with no commentary.`

const contextTranslationPrompt = `You translate a video transcript from %s to English.

The input contains the previous chunk, the chunk to translate and the next chunk. The
previous and next chunks are context only and may be empty at the start or end of the
video. Translate only the chunk marked TRANSLATE THIS CHUNK. Do not add information that is
not present in the text. Return only the translated text.`

const contextTranslationInput = `PREV CHUNK: %s

TRANSLATE THIS CHUNK: %s

NEXT CHUNK: %s`

const chunkSummaryPrompt = `Summarize this part of a video transcript in a few sentences.
Keep names, numbers and claims exactly as stated. Do not invent anything.`

const videoSummaryPrompt = `You are given summaries of consecutive parts of one video, in order.
Write a single coherent summary of the whole video: an overview paragraph followed by the key
points as a short bulleted list. Do not invent anything that is not in the summaries.`

const answerPrompt = `Answer the question using only the transcript excerpts provided. Focus on
the CURRENT excerpt; PREVIOUS and NEXT are context. If the excerpts do not contain the answer,
say that you could not find it.`

func segmentInstructions(fromLang string) string {
	return fmt.Sprintf(segmentTranslationPrompt, languageName(fromLang))
}

func contextInstructions(fromLang string) string {
	return fmt.Sprintf(contextTranslationPrompt, languageName(fromLang))
}

func languageName(lang string) string {
	if lang == "" {
		return "the source language"
	}
	return lang
}

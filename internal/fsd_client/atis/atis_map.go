// Package atis
package atis

import (
	"strings"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

type entry struct {
	voiceRoom  string
	logoffTime string
	lines      []string
	lineCount  int
}

// Message 一份完整的结构化 ATIS
type Message struct {
	Sender     string
	VoiceRoom  string
	Text       string
	LogoffTime string
	LineCount  int
}

// Map 按席位累积 $CR ATIS:V|T|Z|E 行
type Map struct {
	entries map[string]*entry
}

func NewMap() *Map {
	return &Map{entries: make(map[string]*entry)}
}

func (atisMap *Map) get(sender string) *entry {
	e, ok := atisMap.entries[sender]
	if !ok {
		e = &entry{}
		atisMap.entries[sender] = e
	}
	return e
}

// Update 在收到 E 行时返回完整的 ATIS, 其余情况返回 nil
func (atisMap *Map) Update(sender string, lineType fsd.AtisLineType, line string) *Message {
	switch lineType {
	case fsd.AtisLineVoiceRoom:
		e := atisMap.get(sender)
		e.voiceRoom = line
		e.lineCount++
		return nil
	case fsd.AtisLineText:
		e := atisMap.get(sender)
		e.lines = append(e.lines, line)
		e.lineCount++
		return nil
	case fsd.AtisLineLogoff:
		e := atisMap.get(sender)
		e.logoffTime = line
		e.lineCount++
		return nil
	case fsd.AtisLineEnd:
	default:
		return nil
	}

	e, ok := atisMap.entries[sender]
	if !ok {
		return nil
	}
	delete(atisMap.entries, sender)
	e.lineCount++

	text := make([]string, 0, len(e.lines))
	for _, line := range e.lines {
		fixed := strings.TrimSpace(line)
		if fixed == "" || isPlaceholder(fixed) {
			continue
		}
		text = append(text, fixed)
	}
	return &Message{
		Sender:     sender,
		VoiceRoom:  e.voiceRoom,
		Text:       strings.Join(text, "\n"),
		LogoffTime: e.logoffTime,
		LineCount:  e.lineCount,
	}
}

// isPlaceholder 过滤 z, z1, z2 以及单字符的占位行
func isPlaceholder(line string) bool {
	test := strings.ToLower(strings.NewReplacer("\n", "", "\t", "", "\r", "").Replace(line))
	if len([]rune(test)) == 1 {
		return true
	}
	return strings.HasPrefix(test, "z") && len([]rune(test)) == 2
}

func (atisMap *Map) Remove(sender string) {
	delete(atisMap.entries, sender)
}

func (atisMap *Map) Clear() {
	clear(atisMap.entries)
}

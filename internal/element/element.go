// internal/element/element.go
//
// Minimal element host shared by the tile and row components.
// Responsibilities:
//   - Attribute storage with HTML semantics (names are case-insensitive).
//   - Change notifications for a fixed set of observed attributes.
//   - Text content with a change hook (replaces DOM mutation observers).
//   - `part` tokens used as styling hooks on generated children.
//   - Connected state toggled by Attach/Detach.
//
// Notes:
//   - Not safe for concurrent use; elements live on a single loop.
//   - Change hooks fire on every write, even when the value is unchanged,
//     matching attributeChangedCallback. Components do their own diffing.

package element

import (
	"sort"
	"strings"
)

// Element is the host contract every component satisfies.
type Element interface {
	TagName() string

	// Attach and Detach are the connected/disconnected lifecycle hooks.
	Attach()
	Detach()
	Connected() bool

	Attribute(name string) (string, bool)
	HasAttribute(name string) bool
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	Attributes() []Attribute

	TextContent() string
	SetTextContent(s string)

	AddPart(token string)
	Parts() []string
}

// Attr is an attribute value that may be absent.
type Attr struct {
	Value   string
	Present bool
}

// Of returns a present attribute value.
func Of(v string) Attr { return Attr{Value: v, Present: true} }

// Attribute is a name/value pair, used when serializing.
type Attribute struct {
	Name  string
	Value string
}

// ChangeFunc is invoked after an observed attribute is written or removed.
type ChangeFunc func(name string, prev, next Attr)

// Base implements Element. Components embed it and install hooks with Observe.
type Base struct {
	tag       string
	attrs     map[string]string
	observed  map[string]struct{}
	content   string
	parts     []string
	connected bool

	onAttr    ChangeFunc
	onContent func()
}

// NewBase returns a host for tag that reports changes to the observed attributes.
func NewBase(tag string, observed ...string) Base {
	b := Base{
		tag:      strings.ToLower(tag),
		attrs:    make(map[string]string),
		observed: make(map[string]struct{}, len(observed)),
	}
	for _, name := range observed {
		b.observed[strings.ToLower(name)] = struct{}{}
	}
	return b
}

// Observe installs the attribute and content hooks. Either may be nil.
func (b *Base) Observe(onAttr ChangeFunc, onContent func()) {
	b.onAttr = onAttr
	b.onContent = onContent
}

func (b *Base) TagName() string { return b.tag }

func (b *Base) Attach()         { b.connected = true }
func (b *Base) Detach()         { b.connected = false }
func (b *Base) Connected() bool { return b.connected }

func (b *Base) Attribute(name string) (string, bool) {
	v, ok := b.attrs[strings.ToLower(name)]
	return v, ok
}

func (b *Base) HasAttribute(name string) bool {
	_, ok := b.attrs[strings.ToLower(name)]
	return ok
}

func (b *Base) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	prev, had := b.attrs[name]
	b.attrs[name] = value
	b.notify(name, Attr{Value: prev, Present: had}, Of(value))
}

func (b *Base) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	prev, had := b.attrs[name]
	if !had {
		return
	}
	delete(b.attrs, name)
	b.notify(name, Of(prev), Attr{})
}

// ToggleAttribute sets name to the empty string when force is true and
// removes it otherwise.
func (b *Base) ToggleAttribute(name string, force bool) {
	if force {
		if !b.HasAttribute(name) {
			b.SetAttribute(name, "")
		}
		return
	}
	b.RemoveAttribute(name)
}

// Attributes returns all attributes sorted by name.
func (b *Base) Attributes() []Attribute {
	out := make([]Attribute, 0, len(b.attrs))
	for k, v := range b.attrs {
		out = append(out, Attribute{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (b *Base) TextContent() string { return b.content }

func (b *Base) SetTextContent(s string) {
	b.content = s
	if b.onContent != nil {
		b.onContent()
	}
}

// AddPart adds token to the part list once.
func (b *Base) AddPart(token string) {
	for _, p := range b.parts {
		if p == token {
			return
		}
	}
	b.parts = append(b.parts, token)
}

func (b *Base) Parts() []string {
	return append([]string(nil), b.parts...)
}

func (b *Base) notify(name string, prev, next Attr) {
	if b.onAttr == nil {
		return
	}
	if _, ok := b.observed[name]; !ok {
		return
	}
	b.onAttr(name, prev, next)
}

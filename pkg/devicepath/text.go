/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package devicepath

import (
	"strconv"
	"strings"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
)

// textParseFunc builds a Node from a function call's comma-separated,
// already-split argument list: Name(arg1,arg2,...).
type textParseFunc func(args []string) (Node, error)

// rawTextParseFunc builds a Node from a function call's argument text
// taken verbatim, unsplit. Used by nodes whose argument syntax embeds
// characters (notably '/' and ',') that would otherwise be mistaken
// for node or argument separators, such as Uri().
type rawTextParseFunc func(raw string) (Node, error)

var textParsers = map[string]textParseFunc{}
var rawTextParsers = map[string]rawTextParseFunc{}

func registerTextParser(name string, fn textParseFunc) {
	textParsers[name] = fn
}

func registerRawTextParser(name string, fn rawTextParseFunc) {
	rawTextParsers[name] = fn
}

func init() {
	registerTextParser("Path", parseGenericPath)
}

// parseGenericPath is the fallback form for a node this package has no
// named parser for: Path(type,subtype,hexdata).
func parseGenericPath(args []string) (Node, error) {
	if len(args) != 3 {
		return nil, bkerror.New(bkerror.Invalid, "Path() takes 3 arguments")
	}
	t, err := parseHex(args[0])
	if err != nil {
		return nil, err
	}
	s, err := parseHex(args[1])
	if err != nil {
		return nil, err
	}
	data, err := parseHexBlob(args[2])
	if err != nil {
		return nil, err
	}
	return &GenericNode{NType: NodeType(t), NSubType: SubType(s), Data: data}, nil
}

// ToText renders a device-path chain as its canonical textual form.
// displayOnly asks each node for its abbreviated, human-facing
// rendering. allowShortcuts is passed through to every node but no
// node uses it: named ACPI forms such as PciRoot() and the MBR/GPT
// signature names in HD() are always rendered, and no multi-node
// sequence is collapsed into a shorter form.
func ToText(chain Chain, displayOnly, allowShortcuts bool) string {
	parts := make([]string, len(chain))
	for i, n := range chain {
		parts[i] = n.Text(displayOnly, allowShortcuts)
	}
	return strings.Join(parts, "/")
}

// ParseText parses a device path's canonical textual representation
// back into a Chain. Segments shaped like Name(args) are dispatched to
// a registered node parser; any segment that is not recognized as a
// typed node — including one shaped like a call to an unknown or
// mis-cased name — is embedded as a file-path node, per the UEFI text
// grammar. Unless allowImplausible is set, embedding any such
// unrecognized call-shaped segment fails the whole parse with
// Implausible rather than silently producing a suspicious filename.
func ParseText(text string, allowImplausible bool) (Chain, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, bkerror.New(bkerror.Invalid, "empty device path text")
	}

	segments, err := splitTopLevel(text, '/')
	if err != nil {
		return nil, err
	}

	var chain Chain
	implausible := false
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		n, suspicious, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		if suspicious {
			implausible = true
		}
		chain = append(chain, n)
	}
	if len(chain) == 0 {
		return nil, bkerror.New(bkerror.Invalid, "device path text has no nodes")
	}
	if implausible && !allowImplausible {
		return nil, bkerror.New(bkerror.Implausible, "device path text contains an unrecognized node call")
	}
	return chain, nil
}

// parseSegment parses a single '/'-delimited segment. suspicious is
// true when the segment was shaped like a typed-node call (Name(args))
// but named no registered parser, and so was embedded as a file-path
// node rather than decoded as intended.
func parseSegment(seg string) (n Node, suspicious bool, err error) {
	name, rawArgs, ok := splitCall(seg)
	if !ok {
		return &FilePathNode{Path: seg}, false, nil
	}

	if fn, ok := rawTextParsers[name]; ok {
		n, err := fn(rawArgs)
		if err != nil {
			return nil, false, bkerror.Wrap(bkerror.Invalid, err, "parsing "+name)
		}
		return n, false, nil
	}

	fn, ok := textParsers[name]
	if !ok {
		return &FilePathNode{Path: seg}, true, nil
	}

	args, err := splitTopLevel(rawArgs, ',')
	if err != nil {
		return nil, false, err
	}
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	if len(args) == 1 && args[0] == "" {
		args = nil
	}

	node, err := fn(args)
	if err != nil {
		return nil, false, bkerror.Wrap(bkerror.Invalid, err, "parsing "+name)
	}
	return node, false, nil
}

// splitCall recognizes a "Name(args)" segment spanning its entire
// string and returns the name and the unsplit argument text. ok is
// false if seg is not shaped like a complete function call.
func splitCall(seg string) (name, args string, ok bool) {
	open := strings.IndexByte(seg, '(')
	if open <= 0 || seg[len(seg)-1] != ')' {
		return "", "", false
	}
	for _, c := range seg[:open] {
		if !isNameByte(byte(c)) {
			return "", "", false
		}
	}
	return seg[:open], seg[open+1 : len(seg)-1], true
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// splitTopLevel splits s on sep, skipping occurrences inside a matched
// '(' ')' pair or a double-quoted string, the way device-path node
// arguments such as Uri(http://host/path) and AcpiEx's quoted fields
// need.
func splitTopLevel(s string, sep byte) ([]string, error) {
	var out []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && !inQuote:
			inQuote = true
		case c == '"' && inQuote:
			inQuote = false
		case inQuote:
			// inside a quoted span, nothing else is special
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, bkerror.New(bkerror.Invalid, "unbalanced parentheses in device path text")
			}
		case c == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 || inQuote {
		return nil, bkerror.New(bkerror.Invalid, "unbalanced parentheses or quotes in device path text")
	}
	out = append(out, s[start:])
	return out, nil
}

// unquote strips a surrounding pair of double quotes, used by node
// parsers (AcpiEx) whose text form wraps string fields in %q.
func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

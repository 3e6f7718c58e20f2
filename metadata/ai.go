package metadata

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/internal/wire"
)

// AiAgentEngine names the runtime that drives the agent attached to an NFT.
// It is a closed set; decoding rejects values outside Engines().
type AiAgentEngine string

const (
	EngineEliza AiAgentEngine = "eliza"
)

// DefaultEngine is applied when ai_agent.engine is absent.
const DefaultEngine = EngineEliza

// Engines lists every known engine.
func Engines() []AiAgentEngine { return []AiAgentEngine{EngineEliza} }

// Valid reports whether e is a known engine.
func (e AiAgentEngine) Valid() bool {
	switch e {
	case EngineEliza:
		return true
	default:
		return false
	}
}

func (e AiAgentEngine) String() string { return string(e) }

// ParseAiAgentEngine converts s into a known engine.
func ParseAiAgentEngine(s string) (AiAgentEngine, error) {
	e := AiAgentEngine(s)
	if !e.Valid() {
		return "", nftmeta.Root().Issues(nftmeta.CodeInvalidEnum, "expected one of: "+engineList(), "got", s)
	}
	return e, nil
}

func engineList() string {
	names := make([]string, 0, len(Engines()))
	for _, e := range Engines() {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}

// AiAgent configures the AI agent connected with an NFT.
type AiAgent struct {
	Engine AiAgentEngine
	// Character is the agent's character file (an externally defined JSON
	// document, see https://elizaos.github.io/eliza/docs/core/characterfile/).
	Character Character
}

// AiNftMetadata is NftMetadata plus an optional AI agent descriptor.
type AiNftMetadata struct {
	NftMetadata
	AiAgent nftmeta.Optional[AiAgent]
}

type aiAgentOut struct {
	Engine    AiAgentEngine `json:"engine"`
	Character Character     `json:"character"`
}

type aiMetadataOut struct {
	metadataOut
	AiAgent *aiAgentOut `json:"ai_agent,omitempty"`
}

func (a AiAgent) MarshalJSON() ([]byte, error) {
	return json.Marshal(aiAgentOut{Engine: a.Engine, Character: a.Character})
}

func (a *AiAgent) UnmarshalJSON(b []byte) error {
	v, iss := decodeAiAgent(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*a = v
	return nil
}

func (m AiNftMetadata) MarshalJSON() ([]byte, error) {
	out := aiMetadataOut{metadataOut: m.NftMetadata.out()}
	if a, ok := m.AiAgent.Get(); ok {
		out.AiAgent = &aiAgentOut{Engine: a.Engine, Character: a.Character}
	}
	return json.Marshal(out)
}

func (m *AiNftMetadata) UnmarshalJSON(b []byte) error {
	o := wire.DecodeObject(b, nftmeta.Root())
	v := AiNftMetadata{NftMetadata: decodeMetadataFields(o)}
	if raw, ok := o.Raw("ai_agent", false); ok {
		a, iss := decodeAiAgent(raw, o.Path("ai_agent"))
		o.Add(iss...)
		v.AiAgent = nftmeta.Some(a)
	}
	if iss := o.Issues(); len(iss) > 0 {
		return iss
	}
	*m = v
	return nil
}

func decodeAiAgent(raw []byte, at nftmeta.Path) (AiAgent, nftmeta.Issues) {
	o := wire.DecodeObject(raw, at)
	a := AiAgent{Engine: DefaultEngine}
	if s, ok := o.String("engine", false); ok {
		if e := AiAgentEngine(s); e.Valid() {
			a.Engine = e
		} else {
			o.Add(o.Path("engine").Issue(nftmeta.CodeInvalidEnum, "expected one of: "+engineList(), "got", s))
		}
	}
	if cr, ok := o.Raw("character", true); ok {
		c, err := NewCharacter(cr)
		if err != nil {
			o.Add(o.Path("character").Issue(nftmeta.CodeInvalidType, "character file must be a JSON object", "got", wire.Kind(cr)).WithCause(err))
		}
		a.Character = c
	}
	return a, o.Issues()
}

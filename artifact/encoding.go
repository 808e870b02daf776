package artifact

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EncodeTOML serializes an artifact to TOML. Functions and patches go
// through intermediate forms: stack variables are keyed by the decimal
// string of their offset, and patch bytes become a hex string, since TOML
// has neither integer map keys nor a bytes type.
func EncodeTOML(a Artifact) ([]byte, error) {
	switch v := a.(type) {
	case *Function:
		return toml.Marshal(newFunctionDTO(v))
	case *Patch:
		return toml.Marshal(&patchDTO{Addr: v.Addr, Bytes: hex.EncodeToString(v.Bytes)})
	default:
		return toml.Marshal(a)
	}
}

// DecodeTOML deserializes an artifact of the given kind from TOML.
func DecodeTOML(kind Kind, data []byte) (Artifact, error) {
	switch kind {
	case KindFunction:
		var dto functionDTO
		if err := toml.Unmarshal(data, &dto); err != nil {
			return nil, err
		}
		return dto.toFunction()
	case KindFunctionHeader:
		var h FunctionHeader
		if err := toml.Unmarshal(data, &h); err != nil {
			return nil, err
		}
		return &h, nil
	case KindStackVariable:
		var v StackVariable
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case KindGlobalVariable:
		var g GlobalVariable
		if err := toml.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		return &g, nil
	case KindStruct:
		var s Struct
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case KindEnum:
		var e Enum
		if err := toml.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return &e, nil
	case KindComment:
		var c Comment
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case KindPatch:
		var dto patchDTO
		if err := toml.Unmarshal(data, &dto); err != nil {
			return nil, err
		}
		return dto.toPatch()
	default:
		return nil, fmt.Errorf("cannot decode artifact kind %s: %w", kind, ErrInvalid)
	}
}

type functionDTO struct {
	Addr      uint64                    `toml:"addr"`
	Size      uint64                    `toml:"size"`
	Name      string                    `toml:"name,omitempty"`
	Header    *FunctionHeader           `toml:"header,omitempty"`
	StackVars map[string]*StackVariable `toml:"stack_vars,omitempty"`
}

func newFunctionDTO(f *Function) *functionDTO {
	dto := &functionDTO{
		Addr:   f.Addr,
		Size:   f.Size,
		Name:   f.Name,
		Header: f.Header,
	}
	if len(f.StackVars) > 0 {
		dto.StackVars = make(map[string]*StackVariable, len(f.StackVars))
		for offset, sv := range f.StackVars {
			dto.StackVars[strconv.FormatInt(offset, 10)] = sv
		}
	}
	return dto
}

func (dto *functionDTO) toFunction() (*Function, error) {
	f := &Function{
		Addr:   dto.Addr,
		Size:   dto.Size,
		Name:   dto.Name,
		Header: dto.Header,
	}
	if len(dto.StackVars) > 0 {
		f.StackVars = make(map[int64]*StackVariable, len(dto.StackVars))
		for key, sv := range dto.StackVars {
			offset, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("stack variable key %q is not an offset: %w", key, ErrInvalid)
			}
			f.StackVars[offset] = sv
		}
	}
	return f, nil
}

type patchDTO struct {
	Addr  uint64 `toml:"addr"`
	Bytes string `toml:"bytes"`
}

func (dto *patchDTO) toPatch() (*Patch, error) {
	raw, err := hex.DecodeString(dto.Bytes)
	if err != nil {
		return nil, fmt.Errorf("patch bytes %q are not hex: %w", dto.Bytes, ErrInvalid)
	}
	return &Patch{Addr: dto.Addr, Bytes: raw}, nil
}

package deployer

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// CoerceArgs converts loosely typed constructor args (hex strings, Go integers, decimal strings)
// into the Go types abi.Pack expects for inputs.
func CoerceArgs(inputs abi.Arguments, args []interface{}) ([]interface{}, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("constructor expects %d arguments, got %d", len(inputs), len(args))
	}

	out := make([]interface{}, len(args))
	for i, input := range inputs {
		v, err := coerce(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i, input.Type.String(), input.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(t abi.Type, v interface{}) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		return toAddress(v)
	case abi.UintTy, abi.IntTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		return fitInteger(t, n)
	default:
		// bool, string, bytes and composite types go to abi.Pack unchanged
		return v, nil
	}
}

func toAddress(v interface{}) (common.Address, error) {
	switch a := v.(type) {
	case common.Address:
		return a, nil
	case *common.Address:
		if a == nil {
			return common.Address{}, fmt.Errorf("nil address")
		}
		return *a, nil
	case string:
		if !common.IsHexAddress(a) {
			return common.Address{}, fmt.Errorf("invalid address %q", a)
		}
		return common.HexToAddress(a), nil
	default:
		return common.Address{}, fmt.Errorf("cannot use %T as address", v)
	}
}

func toBigInt(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case string:
		// base 0 accepts decimal and 0x-prefixed hex
		parsed, ok := new(big.Int).SetString(strings.TrimSpace(n), 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", n)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("cannot use %T as integer", v)
	}
}

// fitInteger range-checks n against t and returns the concrete type abi.Pack wants:
// *big.Int for wide types, the matching Go integer for 8/16/32/64 bit types.
func fitInteger(t abi.Type, n *big.Int) (interface{}, error) {
	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for unsigned type", n)
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
	}

	goType := t.GetType()
	if goType == bigIntType {
		return n, nil
	}
	v := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}

package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(Constant)
	require.Equal(t, "OP_CONSTANT", info.Name)
	require.Equal(t, 1, info.OperandCount)
	require.Equal(t, Constant, info.Code)
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code     Code
		name     string
		operands int
	}{
		{Constant, "OP_CONSTANT", 1},
		{Add, "OP_ADD", 0},
		{Subtract, "OP_SUBTRACT", 0},
		{Multiply, "OP_MULTIPLY", 0},
		{Divide, "OP_DIVIDE", 0},
		{Negate, "OP_NEGATE", 0},
		{Return, "OP_RETURN", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetInfo(tt.code)
			require.Equal(t, tt.code, info.Code)
			require.Equal(t, tt.name, info.Name)
			require.Equal(t, tt.operands, info.OperandCount)
			require.Equal(t, tt.name, tt.code.String())
		})
	}
}

func TestGetInfoInvalid(t *testing.T) {
	info := GetInfo(Invalid)
	require.Equal(t, Code(0), info.Code)
	require.Equal(t, "", info.Name)
	require.Equal(t, 0, info.OperandCount)
	require.Equal(t, "OP_UNKNOWN", Invalid.String())
	require.Equal(t, "OP_UNKNOWN", Code(255).String())
}

func TestIsBinary(t *testing.T) {
	require.True(t, Add.IsBinary())
	require.True(t, Subtract.IsBinary())
	require.True(t, Multiply.IsBinary())
	require.True(t, Divide.IsBinary())
	require.False(t, Negate.IsBinary())
	require.False(t, Constant.IsBinary())
	require.False(t, Return.IsBinary())
}

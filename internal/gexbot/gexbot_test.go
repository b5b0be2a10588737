package gexbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommands_RendersSchemaCoreTemplateInOrder(t *testing.T) {
	out := Commands("SPX", DefaultParams())

	assert.Len(t, out, 7)
	assert.Equal(t, "!vexn SPX 10 5 all", out[0])
	assert.Equal(t, "!vanna SPX atm 5 all", out[1])
	assert.Equal(t, "!skew SPX ivmid atm 30", out[2])
	assert.Equal(t, "!skew SPX ivmid ntm 30", out[3])
	assert.Equal(t, "!surface SPX spread ntm 30", out[4])
	assert.Equal(t, "!surface SPX ivmid ntm 30", out[5])
	assert.Equal(t, "!surface SPX ivask ntm 30", out[6])
}

func TestCommands_UsesConfiguredParams(t *testing.T) {
	out := Commands("AAPL", Params{Strikes: 20, DTEVex560: 3, DTEVannaATM560: 3, DTESkew: 14, DTELiquidity: 7})

	assert.Equal(t, "!vexn AAPL 20 3 all", out[0])
	assert.Equal(t, "!surface AAPL ivask ntm 7", out[6])
}

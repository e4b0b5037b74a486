package addrbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const router = "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"

func TestAddressLabel(t *testing.T) {
	book, err := FromMap(map[string]string{
		"0x7a250d5630b4cf539739df2c5dacb4c659f2488d": " Uniswap V2: Router ",
	})
	require.NoError(t, err)

	require.Equal(t, "Uniswap V2: Router", book.AddressLabel(router))
	require.Equal(t, "Uniswap V2: Router", book.AddressLabel("0x7A250D5630B4CF539739DF2C5DACB4C659F2488D"))

	unknown := "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
	require.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", book.AddressLabel(unknown))
	require.Equal(t, "not-an-address", book.AddressLabel("not-an-address"))
}

func TestFromMapRejectsInvalidAddress(t *testing.T) {
	_, err := FromMap(map[string]string{"0x123": "short"})
	require.Error(t, err)
}

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sample = `sku,name,category,unit,quantity,reorder_threshold,unit_price,expiry_date
MED-AMOX-500,Amoxicilina 500mg,medicine,tablet,120,20,"1,25",2027-03-01
,Guantes de nitrilo,supply,box,8,10,12.90,
`

func TestReadRows_Valido(t *testing.T) {
	rows, err := readRows(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "MED-AMOX-500", rows[0].SKU)
	assert.Equal(t, 120, rows[0].InitialQuantity)
	assert.Equal(t, "1.25", rows[0].UnitPrice.String())
	require.NotNil(t, rows[0].ExpiryDate)
	assert.Equal(t, "2027-03-01", *rows[0].ExpiryDate)

	assert.Empty(t, rows[1].SKU)
	assert.Nil(t, rows[1].ExpiryDate)
}

func TestReadRows_EncabezadoIncorrecto(t *testing.T) {
	_, err := readRows(strings.NewReader("codigo,nombre,a,b,c,d,e,f\n"))
	assert.ErrorContains(t, err, "encabezado")
}

func TestReadRows_CantidadInvalida(t *testing.T) {
	bad := "sku,name,category,unit,quantity,reorder_threshold,unit_price,expiry_date\nX-1,Algo,supply,box,muchos,1,1,\n"
	_, err := readRows(strings.NewReader(bad))
	assert.ErrorContains(t, err, "línea 2")
}

func TestReadRows_Latin1(t *testing.T) {
	latin, err := charmap.ISO8859_1.NewEncoder().String(strings.Replace(sample, "Guantes de nitrilo", "Jabón clorhexidina", 1))
	require.NoError(t, err)

	rows, err := readRows(transform.NewReader(strings.NewReader(latin), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	assert.Equal(t, "Jabón clorhexidina", rows[1].Name)
}

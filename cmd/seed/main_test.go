package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientes_Latin1(t *testing.T) {
	// "Ferretería Núñez" en ISO-8859-1: í = 0xED, ú = 0xFA, ñ = 0xF1.
	raw := []byte("nombre,email\nFerreter\xeda N\xfa\xf1ez,ventas@nunez.mx\n\nAbarrotes Sol\n")

	got, err := parseClientes(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ferretería Núñez", got[0].nombre)
	assert.Equal(t, "ventas@nunez.mx", got[0].email)
	assert.Equal(t, "Abarrotes Sol", got[1].nombre)
	assert.Empty(t, got[1].email)
}

func TestGenerados(t *testing.T) {
	got := generados(3)
	require.Len(t, got, 3)
	assert.Equal(t, "Cliente de Prueba 3", got[2].nombre)
	assert.Equal(t, "cliente1@ejemplo.com", got[0].email)
}

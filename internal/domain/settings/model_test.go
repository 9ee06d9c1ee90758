package settings

import (
	"testing"

	"folharh/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Network(t *testing.T) {
	s := Settings{NetworkMode: "client", ServerIP: "192.168.10.4", ServerPort: 9480}

	nc := s.Network()
	assert.Equal(t, storage.ModeClient, nc.Mode)
	assert.Equal(t, "192.168.10.4", nc.ServerIP)
	assert.Equal(t, 9480, nc.ServerPort)
	assert.True(t, nc.IsClient())
}

func TestSettings_Network_UnknownModeFallsBack(t *testing.T) {
	s := Settings{NetworkMode: "p2p"}
	assert.Equal(t, storage.ModeStandalone, s.Network().Mode)
}

func TestSettings_Network_ClientWithoutServer(t *testing.T) {
	s := Settings{NetworkMode: "client"}
	nc := s.Network()
	assert.Equal(t, storage.ModeClient, nc.Mode)
	assert.False(t, nc.IsClient(), "client mode without a server address routes locally")
}

func TestFromEnvelope(t *testing.T) {
	env, err := storage.ParseEnvelope(`{"state":{"settings":{
		"companyName":"Construções Kilamba Lda",
		"selectedProvince":"Benguela",
		"networkMode":"server",
		"serverPort":9480
	}},"version":1}`)
	require.NoError(t, err)

	s, err := FromEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t, "Construções Kilamba Lda", s.CompanyName)
	assert.Equal(t, storage.ModeServer, s.Network().Mode)
}

func TestFromEnvelope_NullSettings(t *testing.T) {
	env, err := storage.ParseEnvelope(`{"state":{"settings":null},"version":0}`)
	require.NoError(t, err)

	s, err := FromEnvelope(env)
	require.NoError(t, err)
	assert.Empty(t, s.CompanyName)
}

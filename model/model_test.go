package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	ctor, err := GetModel("skipgram")
	assert.NoError(t, err)
	assert.NotNil(t, ctor)

	_, err = GetModel("cbow")
	assert.Error(t, err)
}

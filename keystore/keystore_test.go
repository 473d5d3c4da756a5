package keystore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecureKeytoolCmd(t *testing.T) {
	cmdSlice := []string{
		"keytool", "-genkey",
		"-keystore", "debug.keystore",
		"-storepass", "android",
		"-keypass", "android",
		"-alias", "androiddebugkey",
	}

	secured := secureKeytoolCmd(cmdSlice)
	require.Equal(t, []string{
		"keytool", "-genkey",
		"-keystore", "debug.keystore",
		"-storepass", "***",
		"-keypass", "***",
		"-alias", "androiddebugkey",
	}, secured)
}

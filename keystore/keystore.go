package keystore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
)

// Debug signing identity, matching what the Android tooling generates for
// debug builds.
const (
	DebugAlias    = "androiddebugkey"
	DebugPassword = "android"

	debugDName    = "CN=Android Debug,O=Android,C=US"
	debugValidity = "10000"
)

// Helper ...
type Helper struct {
	keystorePth      string
	keystorePassword string
	alias            string
}

// Execute ...
func Execute(cmdSlice []string) error {
	prinatableCmd := command.PrintableCommandArgs(false, cmdSlice)
	log.Printf("=> %s", prinatableCmd)
	fmt.Println("")

	cmd, err := command.NewFromSlice(cmdSlice)
	if err != nil {
		return fmt.Errorf("Failed to create command, error: %s", err)
	}

	out, err := cmd.RunAndReturnTrimmedCombinedOutput()
	log.Printf(out)
	return err
}

// ExecuteForOutput ...
func ExecuteForOutput(cmdSlice []string) (string, error) {
	cmd, err := command.NewFromSlice(cmdSlice)
	if err != nil {
		return "", fmt.Errorf("Failed to create command, error: %s", err)
	}

	var errBuf, outputBuf bytes.Buffer
	writer := io.MultiWriter(&outputBuf, &errBuf)
	cmd.SetStderr(writer)

	err = cmd.Run()
	if err != nil {
		err = fmt.Errorf("%s\n%s\n%s", outputBuf.String(), errBuf.String(), err)
	}

	return outputBuf.String(), err
}

// NewDebugHelper returns a helper for the debug JKS keystore at
// keystorePth, generating it with keytool when it does not exist yet.
func NewDebugHelper(keytool, keystorePth string) (Helper, error) {
	if keytool == "" {
		return Helper{}, fmt.Errorf("keytool not found in PATH")
	}

	if exist, err := pathutil.IsPathExists(keystorePth); err != nil {
		return Helper{}, err
	} else if !exist {
		if err := generateDebugKeystore(keytool, keystorePth); err != nil {
			return Helper{}, err
		}
	}

	helper := Helper{
		keystorePth:      keystorePth,
		keystorePassword: DebugPassword,
		alias:            DebugAlias,
	}
	if err := helper.check(keytool); err != nil {
		return Helper{}, err
	}
	return helper, nil
}

// Path ...
func (helper Helper) Path() string {
	return helper.keystorePth
}

// Password ...
func (helper Helper) Password() string {
	return helper.keystorePassword
}

// Alias ...
func (helper Helper) Alias() string {
	return helper.alias
}

func generateDebugKeystore(keytool, keystorePth string) error {
	cmdSlice := []string{
		keytool,
		"-genkey",
		"-v",

		"-storetype",
		"JKS",
		"-keystore",
		keystorePth,
		"-storepass",
		DebugPassword,
		"-keypass",
		DebugPassword,

		"-keyalg",
		"RSA",
		"-keysize",
		"2048",
		"-validity",
		debugValidity,

		"-alias",
		DebugAlias,
		"-dname",
		debugDName,
	}

	prinatableCmd := command.PrintableCommandArgs(false, secureKeytoolCmd(cmdSlice))
	log.Printf("=> %s", prinatableCmd)

	out, err := ExecuteForOutput(cmdSlice)
	if err != nil {
		return fmt.Errorf("failed to generate debug keystore: %s", shortOutput(out, err))
	}
	return nil
}

// check lists the keystore entry to confirm the alias is readable with
// the debug password.
func (helper Helper) check(keytool string) error {
	cmdSlice := []string{
		keytool,
		"-list",
		"-v",

		"-keystore",
		helper.keystorePth,
		"-storepass",
		helper.keystorePassword,

		"-alias",
		helper.alias,

		"-J-Dfile.encoding=utf-8",
		"-J-Duser.language=en-US",
	}

	out, err := ExecuteForOutput(cmdSlice)
	if err != nil {
		return fmt.Errorf("failed to read keystore: %s", shortOutput(out, err))
	}
	if out == "" {
		return fmt.Errorf("failed to read keystore, maybe alias (%s) or password (%s) is not correct", helper.alias, "****")
	}
	return nil
}

func shortOutput(out string, err error) string {
	if out != "" {
		return out
	}
	return err.Error()
}

func secureKeytoolCmd(cmdSlice []string) []string {
	securedCmdSlice := []string{}
	secureNextParam := false
	for _, param := range cmdSlice {
		if secureNextParam {
			param = "***"
		}

		secureNextParam = (param == "-storepass" || param == "-keypass")
		securedCmdSlice = append(securedCmdSlice, param)
	}
	return securedCmdSlice
}

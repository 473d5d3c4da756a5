package main

import (
	"errors"

	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/droidpack/html2apk/keystore"
)

func createKeystoreCmdSlice(configuration *KeystoreSignatureConfiguration) ([]string, error) {
	if configuration == nil {
		return []string{}, errors.New("invalid keystore configuration")
	}

	cmdSlice := []string{
		"--ks",
		configuration.keystorePth,
		"--ks-pass",
		"pass:" + configuration.keystorePassword,
		"--ks-key-alias",
		configuration.alias,
	}

	if configuration.aliasPassword != "" {
		cmdSlice = append(cmdSlice, "--key-pass", "pass:"+configuration.aliasPassword)
	}

	return cmdSlice, nil
}

func (configuration SignatureConfiguration) createSignCmd(apkPth, destApkPth string) ([]string, error) {
	signatureSlice, err := createKeystoreCmdSlice(configuration.keystoreConfiguration)
	if err != nil {
		return nil, err
	}

	cmdSlice := []string{
		configuration.apkSigner,
		"sign",
		"--in",
		apkPth,
		"--out",
		destApkPth,
	}
	cmdSlice = append(cmdSlice, signatureSlice...)

	return cmdSlice, nil
}

// SignAPK signs the aligned APK with the configured keystore entry,
// stripping any pre-existing signature.
func (configuration SignatureConfiguration) SignAPK(apkPth, destApkPth string) error {
	cmdSlice, err := configuration.createSignCmd(apkPth, destApkPth)
	if err != nil {
		return err
	}

	prinatableCmd := command.PrintableCommandArgs(false, secureSignCmd(cmdSlice))
	log.Printf("=> %s", prinatableCmd)

	out, err := keystore.ExecuteForOutput(cmdSlice)
	if err != nil {
		return properError(err, out)
	}

	return nil
}

// VerifyAPK checks whether the signed APK will verify on all Android
// platform versions its manifest declares support for.
func (configuration SignatureConfiguration) VerifyAPK(apkPth string) error {
	cmdSlice := []string{
		configuration.apkSigner,
		"verify",
		"--verbose",
		"--in",
		apkPth,
	}

	prinatableCmd := command.PrintableCommandArgs(false, cmdSlice)
	log.Printf("=> %s", prinatableCmd)

	out, err := keystore.ExecuteForOutput(cmdSlice)
	if err != nil {
		return properError(err, out)
	}

	return nil
}

func properError(err error, out string) error {
	if errorutil.IsExitStatusError(err) {
		return errors.New(out)
	}
	return err
}

func secureSignCmd(cmdSlice []string) []string {
	securedCmdSlice := []string{}
	secureNextParam := false
	for _, param := range cmdSlice {
		if secureNextParam {
			param = "***"
		}

		secureNextParam = (param == "--ks-pass" || param == "--key-pass")
		securedCmdSlice = append(securedCmdSlice, param)
	}
	return securedCmdSlice
}

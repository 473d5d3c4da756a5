package main

import (
	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/droidpack/html2apk/keystore"
)

type zipalignConfiguration struct {
	zipalignPath string
}

func newZipalignConfiguration(zipalignPath string) *zipalignConfiguration {
	return &zipalignConfiguration{
		zipalignPath: zipalignPath,
	}
}

func (config *zipalignConfiguration) checkAlignment(apkPath string) (bool, error) {
	checkCmdSlice := []string{config.zipalignPath, "-c", "-p", "4", apkPath}

	err := keystore.Execute(checkCmdSlice)
	if err != nil {
		if errorutil.IsExitStatusError(err) {
			return false, nil
		}
		return false, err
	}

	log.Printf("APK alignment confirmed.")
	return true, nil
}

func (config *zipalignConfiguration) align(apkPath, dstPath string) error {
	cmdSlice := []string{config.zipalignPath, "-f", "-p", "4", apkPath, dstPath}
	log.Printf("=> %s", command.PrintableCommandArgs(false, cmdSlice))

	_, err := keystore.ExecuteForOutput(cmdSlice)
	return err
}

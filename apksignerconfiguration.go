package main

// KeystoreSignatureConfiguration describes the keystore entry apksigner
// signs with.
type KeystoreSignatureConfiguration struct {
	keystorePth      string
	keystorePassword string
	aliasPassword    string
	alias            string
}

// SignatureConfiguration ...
type SignatureConfiguration struct {
	apkSigner             string
	keystoreConfiguration *KeystoreSignatureConfiguration
}

// NewKeystoreSignatureConfiguration ...
func NewKeystoreSignatureConfiguration(apkSigner, keystorePth, keystorePassword, alias, aliasPassword string) SignatureConfiguration {
	keystoreConfig := KeystoreSignatureConfiguration{
		keystorePth:      keystorePth,
		keystorePassword: keystorePassword,
		alias:            alias,
		aliasPassword:    aliasPassword,
	}

	return SignatureConfiguration{
		apkSigner:             apkSigner,
		keystoreConfiguration: &keystoreConfig,
	}
}

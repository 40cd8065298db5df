package test_utils

import (
	"crypto/rand"
	"encoding/hex"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"os"
	"path/filepath"
	"runtime"
)

var (
	ErrorSyntheticTestError = utils.NewKitError("SYNTHETIC_TEST_ERROR", "Synthetic test error")
)

// FailingReader is a random source that always fails.
type FailingReader struct{}

func (FailingReader) Read(_ []byte) (int, error) {
	return 0, tracerr.Wrap(ErrorSyntheticTestError)
}

func GetCurrentPath() string {
	_, filename, _, _ := runtime.Caller(1)

	return filepath.Dir(filename)
}

// ReadTestData returns the content of a file from test_utils/testdata.
// The files hold a 2048-bit key in every supported container:
//   - private_pkcs1.pem, private_pkcs1.der: RSAPrivateKey
//   - private.pem, private.der: PKCS#8 PrivateKeyInfo
//   - public_pkcs1.pem, public_pkcs1.der: RSAPublicKey
//   - public.pem, public.der: SubjectPublicKeyInfo
//   - public_headerless.txt: the base64 body of public.pem, without BEGIN/END lines
//
// small_private_pkcs1.pem is a 512-bit key, the smallest accepted size.
func ReadTestData(name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(GetCurrentPath(), "testdata", name))
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return content, nil
}

// MustReadTestData is ReadTestData for use in test variable initialisation.
func MustReadTestData(name string) []byte {
	content, err := ReadTestData(name)
	if err != nil {
		panic(err)
	}
	return content
}

func GetRandomString(length int) string {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		panic("Error generating random in GetRandomString:" + err.Error())
	}
	str := hex.EncodeToString(b)
	return str[0:length]
}

func GetRandomBytes(length int) []byte {
	b, err := utils.GenerateRandomBytes(length)
	if err != nil {
		panic("Error generating random in GetRandomBytes:" + err.Error())
	}
	return b
}

// Known good 4096 bits RSA key, in PKCS#8, PKCS#1 and SubjectPublicKeyInfo DER forms
const B64PrivateKey = "MIIJQgIBADANBgkqhkiG9w0BAQEFAASCCSwwggkoAgEAAoICAQDeikrXWN6x5QdiAnJMCBwxZlKu8PQQHgi3eVwnaYeWNeMDL8jHNRs2wm6N05vkEJRdGGMdZdWbw6tL8jvSjqTZFlvzbAAdmNeoHMtBqzvwsjp87xUh/vAutgYLhf5yHH8qDY754nKMcmY1AP/qprJMs0lVCiXIahNNUHcv7B8R8VYNj6IGLa2O+kTJaO2s8dZwR5rSGiwXO2Et3aWYC2iajG4lcnub5FEYFqA63wGcSBjfjMd4E0tbTIfaZ6U+j/kw9nuW3Z+ULrsLUmW23BZGVJHGmCAOChm/cVdd3qwu4eiIIUtuR6OnwEt2kAd0aNWEMMpsCxTMsxwEssi7vj6TP/ALI1BHvmilVCjxbSDQ3EsbSkfgg6Y6QUG+w13CSFdxHxPg0gtkQDkC8/6RJwrz3/Q6O29+Jw8gTCPG6hnsRUBXg/nY7GqtFb44/DNyEVJD/2z051Gmj7jUAoGyRORhik3Iys5ykHGkkVeuUITlJV+hnsmhv2Sz3/ov8UM6wQEECkvX5fCklOjlHCNMXaCHZsVz2gvHrND2uJfEn1k9ePQW/b2B+wlCiZ7uyXMdbTFLnR7sNl7hgATDQCqP1BXRy1mZovsunqHCZOaHR+7U7llNThQpfhpit/7fYXkEEKDcXATdySxYcVowbACzs+yX28S1PR1lQ7QTYqLiGlgm0QIDAQABAoICAQDMmP5X4HfVvAg+npswteAdtsJb3mG1E7fV3zjPb2Fdw6szudHw/C1J+hYkRKG1W1zb/ljZpU9vRsUNLOa9HbIHeFwPf4LXszbKc7aXaHPSRjoptLGMMNPnTihendGiXfq30gFaUkwYPfEj2AhxVtLkW40XJx43lPasBUefAopKN8Ry8VP4NDS2F/f36IVjlHAfiGWZtsBEl64vufDNyedg960otolYeN/pspubpH3Zjht4I/kbtzl39fOM4+9zhnCHCIX13UoitZf3v8iOBuhfvs7Lc/88iSLE9NJrFhbdf4sG5P1xpWGcD9oRZjfEWcG8KBNipAl6bU1cMHcGzNC/Xqscco5z07GAFV/E0tElARCnvc9Y7mxicB6LtPUPTyy+a633B6vY8/nU+UJtXap3ElDtOrcuVdhfHReazydZvq4LtSafvrEVMokBA8dtqfwJiYYUDs1anbXgqX9/KyVdpJ1Io01fXLJJ2lQj0miDecG3LqpH3NPdqhgsc5c5R+6IGIB/7OjMxbvfUcnIntAZ88BKbMAANJiBkTdZwCPgtbU7W054qoORn08PcxpPNE2+zx7cZ95TyRdoJqrbY1VXbEHECoeaJ+4GW2lBNpoAhUHHF52mEL7z9uj1DUwioly/bZRN9GWKS4v0pkLr7YzC5fuUYKYVxbNjb1ZLOXg3QQKCAQEA/k9VGydZuqz14BByLdexrKVs/7alDZ/pLscVOEP6hGG/cBum7cIVmL6pdtaRY+OsD4BmMHUrqTSQB+1SZx74GISvj25c/cwLflpwujElE6bQyDcttCfui9QzexxcKZQBtTVrmcArNidK+XYOSKOD0YiafnEvY/UxgX0VBVgaWp2iFuoV/6jOUhDD29ls1J4shl62Q/QKu8Kreg3KV9nuFY+6w761Fi+HFuvDzNYHBBn6UtCgMbFkYMX6KhtdnAF6IP6QdUOPyFDM4nMC4tpM4LmueFBbbqgHtL2uSqCvGXRofx6PmRo3cyWUTb8YQaJOWL7orY8TthD1n8jXBmIQqQKCAQEA4AToq367TQXQdD65+r2cT5p+o7obOgswytLzuon8BiwLus4Vgcm/o0OayIcC4FJjtDlITZAAUy0iSjEgqvXZ+yanrItLGZEXRl+s9eYzrejAyXdqI9TroyNvTR+g5iN5dOqgCfrfMbu762UTm3NqHN5plL8eqjEL2JpM3dtCDbwMuHqZGe36K1ZhnNazV2XQo8vOC7jKmUySSNr0afb6EQwXmTKjtftGiSJ3CNNXwPJs1vh8p6Xug+OL+d+ENe0uyAuKWzom5IX3GMT65borItycGwvNJkEA1WPErDr3iaF2zk5qH+TKsSYq4SpRqjWV2JCiTCba/ibkBHzSwwQ16QKCAQAL6a907Cz536xM6LhQiXAbREyM1gN5VepYdJ772cNcfC+5krIJJTRZyWSq2nZJFZszxrICxxpafMnadTWM+xhoHZ8TuvnEMdDABICPWEoCV6gkGOGdNNmp1zDqLXPrxrElyfDWbPgZO1H5yZv1ryM3p4yFK8wqhIvjIvbfHzds00GKjUCmj0PK+FoUbGT6uMYhLUKggEgYb5AU0ZyO7PiILglzrfVRqrxLSJQNfmEpwgXF51v5t/OZzOxhGJMUAcW00ff2ZknP+mj+mqCh+9PqGwifPjRqRJjH0LLfcBODv749ZjMX2vCKBlKiKbd7K5077wV7S96CgtzetUvNUr6xAoIBAB6B7KG2P5GssgeypyczfT8F/isT5DNSZNGqStDji7PXeb115U3oiLWWNlUKteSQs81OY79UVgb9xYavDBDcLFRcnkcMLS0NKktGKkrOj8kmQmLtZUH99B0ibTzmisXsnNTEQwk45f5i36Od/z6TSCcoTt6X7Hgm98MGuGMaQfOW4XCaGZGDbCdMuzxdrMzBK9mynpvQDZ8041MSpmhr3wBFUk1lrQ/SaXexft5v0aqQGSxpaKh4G3RQn7Zmrx2c8FsD31KvJ67FY7I22ShB4y/7NTMlt0l3XsKwtI7z9NQEbiaIXUF8qfHYDczeM4Lni0GT6NZQEFC+QR0vVpCCWUkCggEAQu5KILUWR3y3igu20xiTjyyxjfVqC8OM00Q1+XFOlTmGcQBq/SpG+MDDvHWCjjOGSWYJYwZHhW0Via6ujoqrtl5ffu5DpygljJ/opf1e2VIsYbPGl5D1mU3fEPXzRsR0sm9tBr/6jTTahmy4x7ssIQ4hI5xPO2h6sG8pY7pr534uMUn9zGp8k1lu8c52Xsy72I1t4I9nfwGmhG7S9YYEYAJNbXzAsPoXkrUIrv0u26rWIlW7dCjKNM9qt/sUiDr85oZn5cXjxrCvT5uzCThsg4VMuuNw0bhzcx+Uw08+P12BQhwJgNRwO/bUzOWma+azdxLyeASocmjZ+lre7evS8g=="
const B64PrivateKeyPKCS1DER = "MIIJKAIBAAKCAgEA3opK11jeseUHYgJyTAgcMWZSrvD0EB4It3lcJ2mHljXjAy/IxzUbNsJujdOb5BCUXRhjHWXVm8OrS/I70o6k2RZb82wAHZjXqBzLQas78LI6fO8VIf7wLrYGC4X+chx/Kg2O+eJyjHJmNQD/6qayTLNJVQolyGoTTVB3L+wfEfFWDY+iBi2tjvpEyWjtrPHWcEea0hosFzthLd2lmAtomoxuJXJ7m+RRGBagOt8BnEgY34zHeBNLW0yH2melPo/5MPZ7lt2flC67C1JlttwWRlSRxpggDgoZv3FXXd6sLuHoiCFLbkejp8BLdpAHdGjVhDDKbAsUzLMcBLLIu74+kz/wCyNQR75opVQo8W0g0NxLG0pH4IOmOkFBvsNdwkhXcR8T4NILZEA5AvP+kScK89/0OjtvficPIEwjxuoZ7EVAV4P52OxqrRW+OPwzchFSQ/9s9OdRpo+41AKBskTkYYpNyMrOcpBxpJFXrlCE5SVfoZ7Job9ks9/6L/FDOsEBBApL1+XwpJTo5RwjTF2gh2bFc9oLx6zQ9riXxJ9ZPXj0Fv29gfsJQome7slzHW0xS50e7DZe4YAEw0Aqj9QV0ctZmaL7Lp6hwmTmh0fu1O5ZTU4UKX4aYrf+32F5BBCg3FwE3cksWHFaMGwAs7Psl9vEtT0dZUO0E2Ki4hpYJtECAwEAAQKCAgEAzJj+V+B31bwIPp6bMLXgHbbCW95htRO31d84z29hXcOrM7nR8PwtSfoWJEShtVtc2/5Y2aVPb0bFDSzmvR2yB3hcD3+C17M2ynO2l2hz0kY6KbSxjDDT504oXp3Rol36t9IBWlJMGD3xI9gIcVbS5FuNFyceN5T2rAVHnwKKSjfEcvFT+DQ0thf39+iFY5RwH4hlmbbARJeuL7nwzcnnYPetKLaJWHjf6bKbm6R92Y4beCP5G7c5d/XzjOPvc4ZwhwiF9d1KIrWX97/IjgboX77Oy3P/PIkixPTSaxYW3X+LBuT9caVhnA/aEWY3xFnBvCgTYqQJem1NXDB3BszQv16rHHKOc9OxgBVfxNLRJQEQp73PWO5sYnAei7T1D08svmut9wer2PP51PlCbV2qdxJQ7Tq3LlXYXx0Xms8nWb6uC7Umn76xFTKJAQPHban8CYmGFA7NWp214Kl/fyslXaSdSKNNX1yySdpUI9Jog3nBty6qR9zT3aoYLHOXOUfuiBiAf+zozMW731HJyJ7QGfPASmzAADSYgZE3WcAj4LW1O1tOeKqDkZ9PD3MaTzRNvs8e3GfeU8kXaCaq22NVV2xBxAqHmifuBltpQTaaAIVBxxedphC+8/bo9Q1MIqJcv22UTfRlikuL9KZC6+2MwuX7lGCmFcWzY29WSzl4N0ECggEBAP5PVRsnWbqs9eAQci3XsaylbP+2pQ2f6S7HFThD+oRhv3Abpu3CFZi+qXbWkWPjrA+AZjB1K6k0kAftUmce+BiEr49uXP3MC35acLoxJROm0Mg3LbQn7ovUM3scXCmUAbU1a5nAKzYnSvl2Dkijg9GImn5xL2P1MYF9FQVYGlqdohbqFf+ozlIQw9vZbNSeLIZetkP0CrvCq3oNylfZ7hWPusO+tRYvhxbrw8zWBwQZ+lLQoDGxZGDF+iobXZwBeiD+kHVDj8hQzOJzAuLaTOC5rnhQW26oB7S9rkqgrxl0aH8ej5kaN3MllE2/GEGiTli+6K2PE7YQ9Z/I1wZiEKkCggEBAOAE6Kt+u00F0HQ+ufq9nE+afqO6GzoLMMrS87qJ/AYsC7rOFYHJv6NDmsiHAuBSY7Q5SE2QAFMtIkoxIKr12fsmp6yLSxmRF0ZfrPXmM63owMl3aiPU66Mjb00foOYjeXTqoAn63zG7u+tlE5tzahzeaZS/HqoxC9iaTN3bQg28DLh6mRnt+itWYZzWs1dl0KPLzgu4yplMkkja9Gn2+hEMF5kyo7X7RokidwjTV8DybNb4fKel7oPji/nfhDXtLsgLils6JuSF9xjE+uW6KyLcnBsLzSZBANVjxKw694mhds5Oah/kyrEmKuEqUao1ldiQokwm2v4m5AR80sMENekCggEAC+mvdOws+d+sTOi4UIlwG0RMjNYDeVXqWHSe+9nDXHwvuZKyCSU0Wclkqtp2SRWbM8ayAscaWnzJ2nU1jPsYaB2fE7r5xDHQwASAj1hKAleoJBjhnTTZqdcw6i1z68axJcnw1mz4GTtR+cmb9a8jN6eMhSvMKoSL4yL23x83bNNBio1Apo9DyvhaFGxk+rjGIS1CoIBIGG+QFNGcjuz4iC4Jc631Uaq8S0iUDX5hKcIFxedb+bfzmczsYRiTFAHFtNH39mZJz/po/pqgofvT6hsInz40akSYx9Cy33ATg7++PWYzF9rwigZSoim3eyudO+8Fe0vegoLc3rVLzVK+sQKCAQAegeyhtj+RrLIHsqcnM30/Bf4rE+QzUmTRqkrQ44uz13m9deVN6Ii1ljZVCrXkkLPNTmO/VFYG/cWGrwwQ3CxUXJ5HDC0tDSpLRipKzo/JJkJi7WVB/fQdIm085orF7JzUxEMJOOX+Yt+jnf8+k0gnKE7el+x4JvfDBrhjGkHzluFwmhmRg2wnTLs8XazMwSvZsp6b0A2fNONTEqZoa98ARVJNZa0P0ml3sX7eb9GqkBksaWioeBt0UJ+2Zq8dnPBbA99SryeuxWOyNtkoQeMv+zUzJbdJd17CsLSO8/TUBG4miF1BfKnx2A3M3jOC54tBk+jWUBBQvkEdL1aQgllJAoIBAELuSiC1Fkd8t4oLttMYk48ssY31agvDjNNENflxTpU5hnEAav0qRvjAw7x1go4zhklmCWMGR4VtFYmuro6Kq7ZeX37uQ6coJYyf6KX9XtlSLGGzxpeQ9ZlN3xD180bEdLJvbQa/+o002oZsuMe7LCEOISOcTztoerBvKWO6a+d+LjFJ/cxqfJNZbvHOdl7Mu9iNbeCPZ38BpoRu0vWGBGACTW18wLD6F5K1CK79Ltuq1iJVu3QoyjTParf7FIg6/OaGZ+XF48awr0+bswk4bIOFTLrjcNG4c3MflMNPPj9dgUIcCYDUcDv21Mzlpmvms3cS8ngEqHJo2fpa3u3r0vI="
const B64PublicKey = "MIICIjANBgkqhkiG9w0BAQEFAAOCAg8AMIICCgKCAgEA3opK11jeseUHYgJyTAgcMWZSrvD0EB4It3lcJ2mHljXjAy/IxzUbNsJujdOb5BCUXRhjHWXVm8OrS/I70o6k2RZb82wAHZjXqBzLQas78LI6fO8VIf7wLrYGC4X+chx/Kg2O+eJyjHJmNQD/6qayTLNJVQolyGoTTVB3L+wfEfFWDY+iBi2tjvpEyWjtrPHWcEea0hosFzthLd2lmAtomoxuJXJ7m+RRGBagOt8BnEgY34zHeBNLW0yH2melPo/5MPZ7lt2flC67C1JlttwWRlSRxpggDgoZv3FXXd6sLuHoiCFLbkejp8BLdpAHdGjVhDDKbAsUzLMcBLLIu74+kz/wCyNQR75opVQo8W0g0NxLG0pH4IOmOkFBvsNdwkhXcR8T4NILZEA5AvP+kScK89/0OjtvficPIEwjxuoZ7EVAV4P52OxqrRW+OPwzchFSQ/9s9OdRpo+41AKBskTkYYpNyMrOcpBxpJFXrlCE5SVfoZ7Job9ks9/6L/FDOsEBBApL1+XwpJTo5RwjTF2gh2bFc9oLx6zQ9riXxJ9ZPXj0Fv29gfsJQome7slzHW0xS50e7DZe4YAEw0Aqj9QV0ctZmaL7Lp6hwmTmh0fu1O5ZTU4UKX4aYrf+32F5BBCg3FwE3cksWHFaMGwAs7Psl9vEtT0dZUO0E2Ki4hpYJtECAwEAAQ=="

// PublicKeyHash is the base64 SHA-256 of the DER of B64PublicKey
const PublicKeyHash = "jAxDFue28yKEiwzzdcVD88NEMLhMlH88QZfP0ZUz3V8="

// B64PrivateKeyLatin1String is the base64 of the UTF-8 text obtained by reading the PKCS#8 DER of B64PrivateKey as ISO-8859-1
const B64PrivateKeyLatin1String = "MMKCCUICAQAwDQYJKsKGSMKGw7cNAQEBBQAEwoIJLDDCggkoAgEAAsKCAgEAw57CikrDl1jDnsKxw6UHYgJyTAgcMWZSwq7DsMO0EB4Iwrd5XCdpwofCljXDowMvw4jDhzUbNsOCbsKNw5PCm8OkEMKUXRhjHWXDlcKbw4PCq0vDsjvDksKOwqTDmRZbw7NsAB3CmMOXwqgcw4tBwqs7w7DCsjp8w68VIcO+w7AuwrYGC8KFw75yHH8qDcKOw7nDonLCjHJmNQDDv8OqwqbCskzCs0lVCiXDiGoTTVB3L8OsHxHDsVYNwo/CogYtwq3CjsO6RMOJaMOtwqzDscOWcEfCmsOSGiwXO2Etw53CpcKYC2jCmsKMbiVye8Kbw6RRGBbCoDrDnwHCnEgYw5/CjMOHeBNLW0zCh8OaZ8KlPsKPw7kww7Z7wpbDncKfwpQuwrsLUmXCtsOcFkZUwpHDhsKYIA4KGcK/cVddw57CrC7DocOowoghS25HwqPCp8OAS3bCkAd0aMOVwoQww4psCxTDjMKzHATCssOIwrvCvj7Ckz/DsAsjUEfCvmjCpVQow7FtIMOQw5xLG0pHw6DCg8KmOkFBwr7Dg13DgkhXcR8Tw6DDkgtkQDkCw7PDvsKRJwrDs8Ofw7Q6O29+Jw8gTCPDhsOqGcOsRUBXwoPDucOYw6xqwq0Vwr44w7wzchFSQ8O/bMO0w6dRwqbCj8K4w5QCwoHCskTDpGHCik3DiMOKw45ywpBxwqTCkVfCrlDChMOlJV/CocKew4nCocK/ZMKzw5/Dui/DsUM6w4EBBApLw5fDpcOwwqTClMOow6UcI0xdwqDCh2bDhXPDmgvDh8Ksw5DDtsK4wpfDhMKfWT14w7QWw73CvcKBw7sJQsKJwp7DrsOJcx1tMUvCnR7DrDZew6HCgATDg0Aqwo/DlBXDkcOLWcKZwqLDuy7CnsKhw4Jkw6bCh0fDrsOUw65ZTU4UKX4aYsK3w77Dn2F5BBDCoMOcXATDncOJLFhxWjBsAMKzwrPDrMKXw5vDhMK1PR1lQ8K0E2LCosOiGlgmw5ECAwEAAQLCggIBAMOMwpjDvlfDoHfDlcK8CD7CnsKbMMK1w6AdwrbDglvDnmHCtRPCt8OVw584w49vYV3Dg8KrM8K5w5HDsMO8LUnDuhYkRMKhwrVbXMObw75Yw5nCpU9vRsOFDSzDpsK9HcKyB3hcD3/CgsOXwrM2w4pzwrbCl2hzw5JGOinCtMKxwowww5PDp04oXsKdw5HCol3DusK3w5IBWlJMGD3DsSPDmAhxVsOSw6Rbwo0XJx43wpTDtsKsBUfCnwLCiko3w4Ryw7FTw7g0NMK2F8O3w7fDqMKFY8KUcB/CiGXCmcK2w4BEwpfCri/CucOww43DicOnYMO3wq0owrbCiVh4w5/DqcKywpvCm8KkfcOZwo4beCPDuRvCtzl3w7XDs8KMw6PDr3PChnDChwjChcO1w51KIsK1wpfDt8K/w4jCjgbDqF/CvsOOw4tzw788wokiw4TDtMOSaxYWw51/wosGw6TDvXHCpWHCnA/DmhFmN8OEWcOBwrwoE2LCpAl6bU1cMHcGw4zDkMK/XsKrHHLCjnPDk8KxwoAVX8OEw5LDkSUBEMKnwr3Dj1jDrmxicB7Ci8K0w7UPTyzCvmvCrcO3B8Krw5jDs8O5w5TDuUJtXcKqdxJQw606wrcuVcOYXx0XwprDjydZwr7CrgvCtSbCn8K+wrEVMsKJAQPDh23CqcO8CcKJwoYUDsONWsKdwrXDoMKpf38rJV3CpMKdSMKjTV9cwrJJw5pUI8OSaMKDecOBwrcuwqpHw5zDk8OdwqoYLHPClzlHw67CiBjCgH/DrMOow4zDhcK7w59Rw4nDiMKew5AZw7PDgEpsw4AANMKYwoHCkTdZw4Ajw6DCtcK1O1tOeMKqwoPCkcKfTw9zGk80TcK+w48ew5xnw55Tw4kXaCbCqsObY1VXbEHDhArCh8KaJ8OuBltpQTbCmgDChUHDhxfCncKmEMK+w7PDtsOow7UNTCLColzCv23ClE3DtGXCikvCi8O0wqZCw6vDrcKMw4LDpcO7wpRgwqYVw4XCs2NvVks5eDdBAsKCAQEAw75PVRsnWcK6wqzDtcOgEHItw5fCscKswqVsw7/CtsKlDcKfw6kuw4cVOEPDusKEYcK/cBvCpsOtw4IVwpjCvsKpdsOWwpFjw6PCrA/CgGYwdSvCqTTCkAfDrVJnHsO4GMKEwq/Cj25cw73DjAt+WnDCujElE8Kmw5DDiDctwrQnw67Ci8OUM3scXCnClAHCtTVrwpnDgCs2J0rDuXYOSMKjwoPDkcKIwpp+cS9jw7UxwoF9FQVYGlrCncKiFsOqFcO/wqjDjlIQw4PDm8OZbMOUwp4swoZewrZDw7QKwrvDgsKreg3DilfDmcOuFcKPwrrDg8K+wrUWL8KHFsOrw4PDjMOWBwQZw7pSw5DCoDHCsWRgw4XDuiobXcKcAXogw77CkHVDwo/DiFDDjMOicwLDosOaTMOgwrnCrnhQW27CqAfCtMK9wq5KwqDCrxl0aH8ewo/CmRo3cyXClE3CvxhBwqJOWMK+w6jCrcKPE8K2EMO1wp/DiMOXBmIQwqkCwoIBAQDDoATDqMKrfsK7TQXDkHQ+wrnDusK9wpxPwpp+wqPCuhs6CzDDisOSw7PCusKJw7wGLAvCusOOFcKBw4nCv8KjQ8Kaw4jChwLDoFJjwrQ5SE3CkABTLSJKMSDCqsO1w5nDuybCp8KswotLGcKRF0ZfwqzDtcOmM8Ktw6jDgMOJd2ojw5TDq8KjI29NH8Kgw6YjeXTDqsKgCcO6w58xwrvCu8OrZRPCm3NqHMOeacKUwr8ewqoxC8OYwppMw53Dm0INwrwMwrh6wpkZw63DuitWYcKcw5bCs1dlw5DCo8OLw44LwrjDisKZTMKSSMOaw7Rpw7bDuhEMF8KZMsKjwrXDu0bCiSJ3CMOTV8OAw7Jsw5bDuHzCp8Klw67Cg8OjwovDucOfwoQ1w60uw4gLwopbOibDpMKFw7cYw4TDusOlwrorIsOcwpwbC8ONJkEAw5Vjw4TCrDrDt8KJwqF2w45Oah/DpMOKwrEmKsOhKlHCqjXClcOYwpDCokwmw5rDvibDpAR8w5LDgwQ1w6kCwoIBAAvDqcKvdMOsLMO5w5/CrEzDqMK4UMKJcBtETMKMw5YDeVXDqlh0wp7Du8OZw4NcfC/CucKSwrIJJTRZw4lkwqrDmnZJFcKbM8OGwrICw4caWnzDicOadTXCjMO7GGgdwp8TwrrDucOEMcOQw4AEwoDCj1hKAlfCqCQYw6HCnTTDmcKpw5cww6otc8Orw4bCsSXDicOww5Zsw7gZO1HDucOJwpvDtcKvIzfCp8KMwoUrw4wqwoTCi8OjIsO2w58fN2zDk0HCisKNQMKmwo9Dw4rDuFoUbGTDusK4w4YhLULCoMKASBhvwpAUw5HCnMKOw6zDuMKILglzwq3DtVHCqsK8S0jClA1+YSnDggXDhcOnW8O5wrfDs8KZw4zDrGEYwpMUAcOFwrTDkcO3w7ZmScOPw7pow77CmsKgwqHDu8OTw6obCMKfPjRqRMKYw4fDkMKyw59wE8KDwr/Cvj1mMxfDmsOwwooGUsKiKcK3eyvCnTvDrwV7S8OewoLCgsOcw57CtUvDjVLCvsKxAsKCAQAewoHDrMKhwrY/wpHCrMKyB8KywqcnM30/BcO+KxPDpDNSZMORwqpKw5DDo8KLwrPDl3nCvXXDpU3DqMKIwrXCljZVCsK1w6TCkMKzw41OY8K/VFYGw73DhcKGwq8MEMOcLFRcwp5HDC0tDSpLRipKw47Cj8OJJkJiw61lQcO9w7QdIm08w6bCisOFw6zCnMOUw4RDCTjDpcO+YsOfwqPCncO/PsKTSCcoTsOewpfDrHgmw7fDgwbCuGMaQcOzwpbDoXDCmhnCkcKDbCdMwrs8XcKsw4zDgSvDmcKywp7Cm8OQDcKfNMOjUxLCpmhrw58ARVJNZcKtD8OSaXfCsX7Dnm/DkcKqwpAZLGlowqh4G3RQwp/CtmbCrx3CnMOwWwPDn1LCryfCrsOFY8KyNsOZKEHDoy/DuzUzJcK3SXdew4LCsMK0wo7Ds8O0w5QEbibCiF1BfMKpw7HDmA3DjMOeM8KCw6fCi0HCk8Oow5ZQEFDCvkEdL1bCkMKCWUkCwoIBAELDrkogwrUWR3zCt8KKC8K2w5MYwpPCjyzCscKNw7VqC8ODwozDk0Q1w7lxTsKVOcKGcQBqw70qRsO4w4DDg8K8dcKCwo4zwoZJZgljBkfChW0VwonCrsKuwo7CisKrwrZeX37DrkPCpyglwozCn8OowqXDvV7DmVIsYcKzw4bCl8KQw7XCmU3DnxDDtcOzRsOEdMKyb20Gwr/DusKNNMOawoZswrjDh8K7LCEOISPCnE87aHrCsG8pY8K6a8Onfi4xScO9w4xqfMKTWW7DscOOdl7DjMK7w5jCjW3DoMKPZ38BwqbChG7DksO1woYEYAJNbXzDgMKww7oXwpLCtQjCrsO9LsObwqrDliJVwrt0KMOKNMOPasK3w7sUwog6w7zDpsKGZ8Olw4XDo8OGwrDCr0/Cm8KzCThswoPChUzCusOjcMORwrhzcx/ClMODTz4/XcKBQhwJwoDDlHA7w7bDlMOMw6XCpmvDpsKzdxLDsngEwqhyaMOZw7paw57DrcOrw5LDsg=="

// KnownAnswerMessage signed with private_pkcs1.pem, computed with `openssl dgst -<alg> -sign`
const KnownAnswerMessage = "rsakit known answer"

var KnownAnswerSignatures = map[string]string{
	"SHA1":   "01ae21feb3be0e210f2407acdb00b47ac7fd8ee7574df1e3d86680a656f0aac80b996c291362779ca346d5b99a70f4e0259b1e2c9c8cb8cb3471b44e080c6e2ac6913da1a26de38cc173aa8a6c225d453054b73225eed92a8d6959612c1dacf6d93cf23d77497518dfea1979b8881844b2af073e3e22d6dbac696bcf368867f3853d5173fa7f352ced5efb8830e39e5bd2d0b761af203db58df8276bc2a868dbdd91486aa0178a44b32f8a3e74a756694151fe1a42adb29d03bbe4ae00f6a7ace46dbaf03081bad2eed4429457160550f4266a4114df025d33482619120832285ce1684795792e1dc2b2432b629269a818d22f9a435a5cf08f91ba24394f35fc",
	"SHA224": "2776d9dc935b718a28f68792c20966cf4d07e75660803a0003d716e7bc2a74861182b80c8c266fdafe47b628ad891f8aebc67243dc5e8800cf2af6e56f16a785e089152f2cbff09da2d0c63711f58c08dfda52a2ee946b9d5e2b6af27a9dd6f70115b971d01e9710dfef05b3573793dd8dedca1f3bca02c4210f8a28c5a56f2a99337b8dcc700d5dff34ff7a6f16e4a60932101b21bd4e0b85cd2f9c2c32d137df5f2ac7fa82977eb128a19465d75785c793f4db6c2ab74abd59369e9833a82356678a1b827982b94053d94eac0938773a35c2f8f2719d16a0d60e1a6113578b7ab44b91527bdbb0d8cef438d6832d61191d6faca2ea0979181128e4e2f680b7",
	"SHA256": "57e3f6688347ef33b016a453e5a658bb34c42d534ab10fd71bc03bda7360afbf31441786873f027aaa7fb31dc93db78f975fb3c81dd14299174e2c4294598a6c7a59595950815d64b4f865ffce7e5e5bb6b94fb2a315d787cf1cf054d2c57a7b5400dedeed92e532a4349c3b0c1020adcd7b02bb2e5632e8439d60be4f2a6d4c4ea079c699c5d77329280c6d91dab11e0fe7153554d4b15d57ef0c42bbd58bc5b9d30e6ec11c0c6e93d4f7f6f534bf8523243c3314cb36fcf2dfddaf929d1cf1a0c2ee80b35fcb28a9e6df5b20689db87ed34a2075f3355f4f8be6ccbc5425f95ef00993f4526b8e35ac69f688b3f58fd58ef018a09d52fb33ef4bb718ed261c",
	"SHA384": "1f729033b3f8136be1416bc3614d25f6d27c5e8314b0cdf1bc20910d566dd9a8145513717261cf07435fd659354b01c80f79111f5e20017e509605914a8779f20fb5eb898ab96998ff6d6ea04ccd5241a2b074d15d862be05f4e529802fa706c77659b7449b8ac1e1c5b4ddb54c67a8a4084f7dc23daa056f1547ae3272e7f3267053df97bd12b53bac32a22e4c70c1e4ed745abaa01fa94b1df01ecac5d9b2b5d53cc6b2314ce2eb585395aeb39049140b44c787309bd670912f733f49e3670a4698358e3c20eb793cecdf0adddb63d23f9b96fadcfaafe1da15f88fed9959339ecd014f462fe16c1b66bf407b142127a957cfa7346d12bf8eb452c2e94e9fa",
	"SHA512": "15a4532f36aa548cc298969fb81f6b00f1907e901824eae629e2ad9b1de181e220615fe07f178b34e3eaee4fc0320bfe2f849b465ff9a3d7c471b8ea9fe5a063a98da7b3f15415f930e90ed5c2280fb0e298267abf78ee9f8a15e601741e8af53f0797cdd68c299d26ab5f190bb64b69897bee080d9e90ad468f4fc54ff241ca3e3d6d5b16130cec5b4edfaabb894e78a2a3c7d904938db5b24827bdc3ba13a07dc869f969f8adc6463ca4116becf6e888cff8ccca70d9cb8660456c548fac6600e42033efa89e5fe1cb24549775154b172ef8e249790f9f7ea7135b45aac30cdc6f89a2031a7b160c37fae7a6f262893d92689bf7413d9c4dfeff19ba50fdfd",
}

// SmallKeyDecryptVectors are (base64 ciphertext, plaintext) pairs for small_private_pkcs1.pem, generated with `openssl rsautl -pkcs -encrypt`
var SmallKeyDecryptVectors = [][2]string{
	{"gIcUIoVkD6ATMBk/u/nlCZCCWRKdkfjCgFdo35VpRXLduiKXhNz1XupLLzTXAybEq15juc+EgY5o0DHv/nt3yg==", "x"},
	{"Y7TOCSqofGhkRb+jaVRLzK8xw2cSo1IVES19utzv6hwvx+M8kFsoWQm5DzBeJCZTCVDPkTpavUuEbgp8hnUGDw==", "testing."},
	{"arReP9DJtEVyV2Dg3dDp4c/PSk1O6lxkoJ8HcFupoRorBZG+7+1fDAwT1olNddFnQMjmkb8vxwmNMoTAT/BFjQ==", "testing.\n"},
	{"WtaBXIoGC54+vH0NH0CHHE+dRDOsMc/6BrfFu2lEqcKL9+uDuWaf+Xj9mrbQCjjZcpQuX733zyok/jsnqe/Ftw==", "01234567890123456789012345678901234567890123456789012"},
}

// SmallKeyOverlongCiphertext decrypts under small_private_pkcs1.pem to a block whose padding string is only 3 bytes long
const SmallKeyOverlongCiphertext = "fjOVdirUzFoLlukv80dBllMLjXythIf22feqPrNo0YoIjzyzyoMFiLjAc/Y4krkeZ11XFThIrEvw\nkRiZcCq5ng=="

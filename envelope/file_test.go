package envelope

import (
	"archive/tar"
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestTarUntar(t *testing.T) {
	clearData := []byte("1 in 5,000 north Atlantic lobsters are born bright blue")
	testFileName := "random.fact"

	t.Parallel()
	t.Run("Can tar-untar", func(t *testing.T) {
		t.Parallel()
		archive, err := tarFile(clearData, testFileName)
		require.NoError(t, err)

		content, filename, err := unTarFile(archive)
		require.NoError(t, err)
		assert.Equal(t, testFileName, filename)
		assert.Equal(t, clearData, content)
	})
	t.Run("nil file", func(t *testing.T) {
		t.Parallel()
		_, err := tarFile(nil, testFileName)
		assert.ErrorIs(t, err, ErrorTarFileNoFile)
	})
	t.Run("Untar errors", func(t *testing.T) {
		t.Parallel()
		writeArchive := func(headers []tar.Header, data []byte) []byte {
			var buf bytes.Buffer
			writer := tar.NewWriter(&buf)
			for i := range headers {
				require.NoError(t, writer.WriteHeader(&headers[i]))
				if data != nil {
					_, err := writer.Write(data)
					require.NoError(t, err)
				}
			}
			return buf.Bytes()
		}
		header := tar.Header{Name: testFileName, Size: int64(len(clearData)), Typeflag: tar.TypeReg, Mode: 0600}
		tooLong := header
		tooLong.Size += 10

		for name, archive := range map[string][]byte{
			"empty":      nil,
			"not a tar":  []byte("that's not a tar file!"),
			"no header":  writeArchive(nil, nil),
			"no content": writeArchive([]tar.Header{header}, nil),
			"too long":   writeArchive([]tar.Header{tooLong}, clearData),
		} {
			_, _, err := unTarFile(archive)
			assert.ErrorIs(t, err, ErrorUntarUnexpectedEOF, name)
		}

		_, _, err := unTarFile(writeArchive([]tar.Header{header, header}, clearData))
		assert.ErrorIs(t, err, ErrorUnTarFileNoEOF)
	})
}

func TestSealFile(t *testing.T) {
	privateKey := loadPrivateKey(t, "private_pkcs1.pem")
	publicKey := privateKey.Public()
	clearData := []byte("1 in 5,000 north Atlantic lobsters are born bright blue")

	t.Parallel()
	t.Run("In memory", func(t *testing.T) {
		t.Parallel()
		sealed, err := SealFile(clearData, "random.fact", publicKey)
		require.NoError(t, err)
		assert.NotContains(t, string(sealed), "random.fact")

		clearFile, err := OpenFile(sealed, privateKey)
		require.NoError(t, err)
		assert.Equal(t, &ClearFile{Filename: "random.fact", FileContent: clearData}, clearFile)

		notAFile, err := Seal([]byte("plain message"), publicKey)
		require.NoError(t, err)
		_, err = OpenFile(notAFile, privateKey)
		assert.ErrorIs(t, err, ErrorUntarUnexpectedEOF)
	})
	t.Run("From path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		clearPath := filepath.Join(dir, "random.fact")
		require.NoError(t, os.WriteFile(clearPath, clearData, 0600))

		sealedPath, err := SealFileFromPath(clearPath, publicKey)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "random.fact.rsakit"), sealedPath)

		secondPath, err := SealFileFromPath(clearPath, publicKey)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "random (1).fact.rsakit"), secondPath)

		openedPath, err := OpenFileFromPath(sealedPath, privateKey)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "random (1).fact"), openedPath)
		opened, err := os.ReadFile(openedPath)
		require.NoError(t, err)
		assert.Equal(t, clearData, opened)

		_, err = SealFileFromPath(filepath.Join(dir, "missing"), publicKey)
		assert.ErrorIs(t, err, os.ErrNotExist)
		_, err = OpenFileFromPath(filepath.Join(dir, "missing"), privateKey)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("No free filename", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "full.txt"), nil, 0600))
		for i := 1; i <= 99; i++ {
			p, err := getFreeFilePath(dir, "full", ".txt")
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(p, nil, 0600))
		}
		_, err := getFreeFilePath(dir, "full", ".txt")
		assert.ErrorIs(t, err, ErrorNoFreeFilename)
	})
}

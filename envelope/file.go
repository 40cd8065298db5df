package envelope

import (
	"archive/tar"
	"bytes"
	"fmt"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrorTarFileNoFile is returned when the file content to seal is nil
	ErrorTarFileNoFile = utils.NewKitError("ENVELOPE_TAR_FILE_NO_FILE", "file cannot be nil")
	// ErrorUnTarFileNoEOF is returned when the opened archive holds more than the announced file
	ErrorUnTarFileNoEOF = utils.NewKitError("ENVELOPE_UNTAR_FILE_NO_EOF", "expected end of file, but did not get it")
	// ErrorUntarUnexpectedEOF is returned when the decrypted content is not a tar archive
	ErrorUntarUnexpectedEOF = utils.NewKitError("ENVELOPE_UNTAR_UNEXPECTED_EOF", "unable to untar file after decryption")
	// ErrorNoFreeFilename is returned when no free filename is found (up to 99)
	ErrorNoFreeFilename = utils.NewKitError("ENVELOPE_NO_FREE_FILENAME", "unable to find a free filename")
)

// FileExtension is appended to the name of sealed files.
const FileExtension = ".rsakit"

// ClearFile is a file recovered from an envelope.
type ClearFile struct {
	// Filename is the name the file had when it was sealed.
	Filename string
	// FileContent is the content of the file.
	FileContent []byte
}

func tarFile(file []byte, filename string) ([]byte, error) {
	if file == nil {
		return nil, tracerr.Wrap(ErrorTarFileNoFile)
	}
	header := tar.Header{
		Name:     filename,
		Size:     int64(len(file)),
		Typeflag: tar.TypeReg,
		Mode:     0600,
	}

	var buf bytes.Buffer
	writer := tar.NewWriter(&buf)
	if err := writer.WriteHeader(&header); err != nil {
		return nil, tracerr.Wrap(err)
	}
	if _, err := writer.Write(file); err != nil {
		return nil, tracerr.Wrap(err)
	}
	if err := writer.Close(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return buf.Bytes(), nil
}

func unTarFile(file []byte) ([]byte, string, error) {
	tarReader := tar.NewReader(bytes.NewReader(file))

	header, err := tarReader.Next()
	if err != nil {
		return nil, "", tracerr.Wrap(ErrorUntarUnexpectedEOF.AddDetails(err.Error()))
	}
	info := header.FileInfo()
	fileBuff, err := io.ReadAll(tarReader)
	if err != nil {
		return nil, "", tracerr.Wrap(ErrorUntarUnexpectedEOF.AddDetails(err.Error()))
	}
	if int64(len(fileBuff)) != info.Size() {
		return nil, "", tracerr.Wrap(ErrorUntarUnexpectedEOF)
	}
	if _, err = tarReader.Next(); err != io.EOF {
		return nil, "", tracerr.Wrap(ErrorUnTarFileNoEOF)
	}
	return fileBuff, info.Name(), nil
}

// SealFile seals a named file: the name travels inside the encrypted archive, never in the header.
func SealFile(file []byte, filename string, key *asymkey.PublicKey) ([]byte, error) {
	archive, err := tarFile(file, filename)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	sealed, err := Seal(archive, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return sealed, nil
}

// OpenFile opens an envelope produced by SealFile.
func OpenFile(data []byte, key *asymkey.PrivateKey) (*ClearFile, error) {
	archive, err := Open(data, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	content, filename, err := unTarFile(archive)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &ClearFile{Filename: filename, FileContent: content}, nil
}

func getFreeFilePath(basePath string, wantedFilename string, wantedExt string) (string, error) {
	iteration := 0
	iterationString := ""
	for iteration <= 99 {
		iterationPath := path.Join(basePath, wantedFilename+iterationString+wantedExt)
		_, err := os.Stat(iterationPath)
		if err != nil {
			return iterationPath, nil
		}
		iteration++
		iterationString = fmt.Sprintf(" (%d)", iteration)
	}
	return "", tracerr.Wrap(ErrorNoFreeFilename)
}

// SealFileFromPath seals the file at clearFilePath next to it, under the first free name ending in
// FileExtension, and returns the path written.
func SealFileFromPath(clearFilePath string, key *asymkey.PublicKey) (string, error) {
	filename := filepath.Base(clearFilePath)
	clearFile, err := os.ReadFile(clearFilePath)
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	sealed, err := SealFile(clearFile, filename, key)
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	directory, err := filepath.Abs(filepath.Dir(clearFilePath))
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	fileExt := filepath.Ext(filename)
	freeFilePath, err := getFreeFilePath(directory, strings.TrimSuffix(filename, fileExt), fileExt+FileExtension)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	err = os.WriteFile(freeFilePath, sealed, 0600)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return freeFilePath, nil
}

// OpenFileFromPath opens the envelope at sealedFilePath and writes the clear file next to it, under
// its original name or the first free variant of it.
func OpenFileFromPath(sealedFilePath string, key *asymkey.PrivateKey) (string, error) {
	sealed, err := os.ReadFile(sealedFilePath)
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	clearFile, err := OpenFile(sealed, key)
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	directory, err := filepath.Abs(filepath.Dir(sealedFilePath))
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	// the name comes from the archive: keep only its last element
	name := filepath.Base(clearFile.Filename)
	fileExt := filepath.Ext(name)
	freeFilePath, err := getFreeFilePath(directory, strings.TrimSuffix(name, fileExt), fileExt)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	err = os.WriteFile(freeFilePath, clearFile.FileContent, 0600)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return freeFilePath, nil
}

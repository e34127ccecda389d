package folderhash

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// HashFile streams a file through a fresh hash context and returns the raw digest.
// The context is checked between buffer reads so a long read can be abandoned.
func HashFile(ctx context.Context, fs billy.Filesystem, filePath string, algorithm *HashAlgorithm, bufferSize int) ([]byte, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return nil, statOrReadError(filePath, err)
	}
	defer file.Close()

	adviseSequential(file)

	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	hasher := algorithm.NewFunc()
	buffer := make([]byte, bufferSize)

	for {
		select {
		case <-ctx.Done():
			return nil, newHashError(KindUnreadableFile, filePath, fmt.Errorf("hash operation interrupted: %w", ctx.Err()))
		default:
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newHashError(KindUnreadableFile, filePath, fmt.Errorf("failed to read: %w", err))
		}
	}

	return hasher.Sum(nil), nil
}

func statOrReadError(filePath string, err error) error {
	if he := statError(filePath, err); KindOf(he) == KindNotFound {
		return he
	}
	return newHashError(KindUnreadableFile, filePath, fmt.Errorf("failed to open: %w", err))
}

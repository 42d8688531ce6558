package reencode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mediashrink/internal/fileutil"
	"mediashrink/internal/logging"
	"mediashrink/internal/media"
	"mediashrink/internal/transform"
)

var errEmptyOutput = errors.New("encoder produced no output")

// encodeAsset re-encodes one asset and returns the size of the replacement.
// The per-asset scratch directory is removed on every path; the original is
// only touched by the final ReplaceFile.
func (r *run) encodeAsset(ctx context.Context, index int, asset media.Asset) (int64, error) {
	fail := func(stage Stage, err error) (int64, error) {
		return 0, &TransformError{Path: asset.Path, Category: asset.Category, Stage: stage, Err: err}
	}

	dir := filepath.Join(r.scratch, strconv.Itoa(index))
	if err := os.Mkdir(dir, 0o700); err != nil {
		return fail(StageScratch, err)
	}
	defer os.RemoveAll(dir)

	// Same basename keeps the extension, which selects the muxer.
	output := filepath.Join(dir, filepath.Base(asset.Path))

	args, err := transform.BuildArgs(asset.Category, asset.Path, output)
	if err != nil {
		return fail(StageBuild, err)
	}

	r.logger.Debug("re-encoding asset",
		logging.String(logging.FieldPath, asset.Path),
		logging.String(logging.FieldCategory, asset.Category.String()),
		logging.Any("args", args),
	)

	if err := r.client.Encode(ctx, args); err != nil {
		return fail(StageEncode, err)
	}

	info, err := os.Lstat(output)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fail(StageVerify, errEmptyOutput)
	case err != nil:
		return fail(StageVerify, err)
	case !info.Mode().IsRegular():
		return fail(StageVerify, fmt.Errorf("output is not a regular file (%s)", info.Mode().Type()))
	case info.Size() == 0:
		return fail(StageVerify, errEmptyOutput)
	}

	if err := ctx.Err(); err != nil {
		return fail(StageReplace, err)
	}
	if err := fileutil.ReplaceFile(output, asset.Path, asset.Mode); err != nil {
		return fail(StageReplace, err)
	}
	return info.Size(), nil
}

// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/mattfoxxx/salt-checkmk/backoff"
	"github.com/mattfoxxx/salt-checkmk/build"
	"github.com/mattfoxxx/salt-checkmk/internal/util"
)

// Download fetches url into dest via a temporary file in the same directory.
//
// A response other than 2xx, or a failure writing the file, results in false
// without an error. Errors from the request itself are wrapped with
// ErrTLSVerification or ErrConnection where they can be classified. Requests
// that could not connect are retried up to the configured download retries.
func (h *Host) Download(ctx context.Context, url string, dest string) (bool, error) {
	var ok bool

	err := backoff.FiveSec.Retry(ctx, h.cfg.DownloadRetries, func(err error) bool { return errors.Is(err, ErrConnection) }, func(try int) error {
		if try > 0 {
			h.log.Warnf("Retrying download of %s, attempt %d of %d", url, try+1, h.cfg.DownloadRetries+1)
		}

		var err error
		ok, err = h.download(ctx, url, dest)

		return err
	})

	return ok, err
}

func (h *Host) download(ctx context.Context, url string, dest string) (bool, error) {
	timeoutCtx, cancel := withTimeout(ctx, h.cfg.DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("invalid url %s: %w", url, err)
	}
	req.Header.Add("User-Agent", fmt.Sprintf("CheckMK Agent Plugin %s", build.Version))

	h.log.Infof("Attempting to download %s to %s", url, dest)

	resp, err := h.client.Do(req)
	if err != nil {
		return false, classifyRequestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.log.Errorf("Download of %s failed: %s", url, resp.Status)
		return false, nil
	}

	tf, err := os.CreateTemp(filepath.Dir(dest), fmt.Sprintf(".%s-*", filepath.Base(dest)))
	if err != nil {
		h.log.Errorf("Could not create temporary file for %s: %s", dest, err)
		return false, nil
	}
	defer os.Remove(tf.Name())

	n, err := io.Copy(tf, resp.Body)
	if err != nil {
		tf.Close()
		h.log.Errorf("Could not download %s: %s", url, err)
		return false, classifyRequestError(err)
	}

	err = tf.Close()
	if err != nil {
		h.log.Errorf("Could not write %s: %s", tf.Name(), err)
		return false, nil
	}

	err = os.Rename(tf.Name(), dest)
	if err != nil {
		h.log.Errorf("Could not move download into place at %s: %s", dest, err)
		return false, nil
	}

	h.log.Debugf("Downloaded %s from %s to %s", humanize.IBytes(uint64(n)), url, dest)

	sum, err := util.Sha256HashFile(dest)
	if err == nil {
		h.log.Infof("Downloaded %s has sha256 %s", dest, sum)
	}

	return true, nil
}

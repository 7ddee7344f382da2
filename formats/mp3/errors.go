// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrInvalidStream wraps failures to find a decodable MPEG audio frame.
var ErrInvalidStream = errors.New("invalid MP3 stream")

// Package logstream provides line-oriented, size-bounded emission of a
// container log file, along with the log path construction and
// container-disambiguation rules that precede it.
package logstream

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sarahbx/must-oc/internal/coreerr"
	"github.com/sarahbx/must-oc/internal/query"
	"github.com/sarahbx/must-oc/internal/record"
)

// DefaultMaxLogBytes is the default MAX_LOG_BYTES ceiling: 100 MiB.
const DefaultMaxLogBytes int64 = 100 * 1024 * 1024

const truncationNotice = "*** log truncated: byte limit reached ***\n"

// state is the streamer's explicit emission state machine, kept as a named
// type purely for documentation clarity — the loop below never branches on
// an exported state value because each transition is unconditional once
// its trigger fires.
type state int

const (
	streaming state = iota
	truncated
	done
)

// Path builds the log file path for h under archiveRoot, including the
// intentionally doubled container directory segment, a must-gather
// producer quirk.
func Path(archiveRoot string, h query.LogHandle) string {
	variant := "current.log"
	if h.Variant == query.LogPrevious {
		variant = "previous.log"
	}
	return filepath.Join(archiveRoot, "namespaces", h.Namespace, "pods", h.Pod,
		h.Container, h.Container, "logs", variant)
}

// ResolveContainer applies the disambiguation rule given the pod's parsed
// containers: if h already names a container, it is used as-is; if
// none was given and the pod has exactly one container, that container is
// the default; if none was given and the pod has more than one, the call
// fails with *coreerr.AmbiguousContainer.
func ResolveContainer(h query.LogHandle, pod *record.Record) (string, error) {
	if h.Container != "" {
		return h.Container, nil
	}
	if pod == nil {
		return "", &coreerr.NotFound{What: "pod " + h.Pod}
	}

	containers := PodContainers(pod)
	switch len(containers) {
	case 0:
		return "", &coreerr.NotFound{What: "pod " + h.Pod + " has no containers"}
	case 1:
		return containers[0], nil
	default:
		return "", &coreerr.AmbiguousContainer{Pod: h.Pod, Containers: containers}
	}
}

// PodContainers returns the spec.containers[].name list of a pod record, in
// document order.
func PodContainers(pod *record.Record) []string {
	spec, ok := pod.Raw.Get("spec")
	if !ok {
		return nil
	}
	containers, ok := spec.Get("containers")
	if !ok || containers.Kind != record.KindSeq {
		return nil
	}
	var names []string
	for _, c := range containers.Seq {
		if name, ok := c.NestedString("name"); ok {
			names = append(names, name)
		}
	}
	return names
}

// Stream copies path's contents to sink line by line, never buffering the
// whole file, stopping and appending a single truncation notice once
// maxBytes has been emitted. A partial last line with no trailing newline
// is emitted as-is.
func Stream(path string, sink io.Writer, maxBytes int64) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &coreerr.NotFound{What: path}
		}
		return err
	}
	defer f.Close()

	st := streaming
	var written int64

	reader := bufio.NewReader(f)
	for st == streaming {
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			if written+int64(len(line)) > maxBytes {
				allowed := maxBytes - written
				if allowed > 0 {
					if _, err := sink.Write(line[:allowed]); err != nil {
						return err
					}
				}
				st = truncated
			} else {
				if _, err := sink.Write(line); err != nil {
					return err
				}
				written += int64(len(line))
			}
		}

		if st == truncated {
			break
		}

		if readErr != nil {
			if readErr == io.EOF {
				st = done
				break
			}
			return readErr
		}
	}

	if st == truncated {
		if _, err := fmt.Fprint(sink, truncationNotice); err != nil {
			return err
		}
	}

	return nil
}

package loader

import (
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-waddle/engine/model"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBaseDir is an option builder that sets the directory relative paths resolve against.
//
// Parameters:
//   - dir: the asset root directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the base directory option to a loader
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.baseDir = dir
	}
}

// WithRoleClassifier is an option builder that sets how mesh names map to scene roles.
//
// Parameters:
//   - classify: the classifier applied to every instantiated mesh node
//
// Returns:
//   - LoaderBuilderOption: a function that applies the classifier option to a loader
func WithRoleClassifier(classify model.RoleClassifier) LoaderBuilderOption {
	return func(l *loader) {
		l.classify = classify
	}
}

// WithPoster is an option builder that sets how async results are delivered. The engine
// passes its main-thread queue here so continuations never run on a worker.
//
// Parameters:
//   - post: schedules a function; nil keeps the default of running it on the worker
//
// Returns:
//   - LoaderBuilderOption: a function that applies the poster option to a loader
func WithPoster(post func(func())) LoaderBuilderOption {
	return func(l *loader) {
		if post != nil {
			l.post = post
		}
	}
}

// WithIgnoreZeroRGBs is an option builder that makes material libraries skip all-black
// Ka, Kd and Ks values.
//
// Parameters:
//   - ignore: whether to skip zero colors
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithIgnoreZeroRGBs(ignore bool) LoaderBuilderOption {
	return func(l *loader) {
		l.mtl.ignoreZeroRGBs = ignore
	}
}

// WithWorkers is an option builder that sizes the background worker pool.
//
// Parameters:
//   - workers: maximum concurrent imports
//   - queueSize: pending task capacity before submitters block
//   - idleTimeout: how long an idle worker lingers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pool options to a loader
func WithWorkers(workers, queueSize int, idleTimeout time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if workers > 0 {
			l.workers = workers
		}
		if queueSize > 0 {
			l.queueSize = queueSize
		}
		if idleTimeout > 0 {
			l.idleTimeout = idleTimeout
		}
	}
}

// NameContains returns a classifier that tags meshes whose name contains substr with role,
// and every other mesh RoleMesh. The match is case-sensitive.
//
// Parameters:
//   - substr: the substring to look for; empty matches nothing
//   - role: the role to assign on a match
//
// Returns:
//   - model.RoleClassifier: the classifier
func NameContains(substr string, role scene.Role) model.RoleClassifier {
	return func(name string) scene.Role {
		if substr != "" && strings.Contains(name, substr) {
			return role
		}
		return scene.RoleMesh
	}
}

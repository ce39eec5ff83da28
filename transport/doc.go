// File: transport/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package transport hosts the port driver registry and the per-port
// statistics shared by driver implementations. Concrete drivers live in
// subpackages and register themselves at import time.
package transport

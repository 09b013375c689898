// File: internal/sysfs/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package sysfs drives the kernel GPIO class interface: controller
// enumeration, line claims over the export/unexport command files,
// attribute reads and writes, and the held-open value descriptor the
// detection loop polls.
//
// Functions here return sentinel-wrapped causes; the gpio facade attaches
// line, operation, and error class.
package sysfs

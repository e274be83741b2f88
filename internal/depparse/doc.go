// Package depparse normalizes heterogeneous dependency declarations into an
// ordered list of (name, version) pairs.
//
// Two input shapes are supported:
//
//   - requirements-style constraint strings ("flask==2.0.1",
//     "requests>=2.25.0", "numpy")
//   - package.json-style name→constraint maps ({"express": "^4.17.1"})
//
// Parsing never fails on a malformed individual entry — it skips the entry or
// degrades to an absent version. Rejecting an entirely empty batch is the
// caller's responsibility.
package depparse

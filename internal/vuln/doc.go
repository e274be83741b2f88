// Package vuln queries the OSV (Open Source Vulnerabilities) database for
// known advisories against a single package.
//
// Advisory order is whatever OSV returns — it is not re-sorted. All failure
// modes degrade to an empty advisory list and are logged; the vulnerability
// source being down never fails an analysis.
package vuln

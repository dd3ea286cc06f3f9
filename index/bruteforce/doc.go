// Package bruteforce provides a baseline star index that answers nearest
// neighbor queries by scoring every star and sorting. It shares the index
// contract with the R-tree and serves as its reference implementation.
package bruteforce

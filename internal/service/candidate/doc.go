// Package candidate implements candidate lifecycle management.
//
// The service layer contains all business logic for creating, updating,
// moving, and removing candidates within a selection process. It depends
// on repository interfaces defined in this package and should never
// import from api/.
//
// Repository implementations live in repository/postgres/.
package candidate

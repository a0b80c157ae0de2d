// Package process implements selection process management.
//
// A process is a job opening with an ordered pipeline of stages that
// candidates move through. The service layer owns stage ordering rules;
// persistence lives behind the Repository interface.
package process

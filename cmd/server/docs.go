// Package main ProblemHub Server API
//
//	@title						ProblemHub Server API
//	@version					1.0
//	@description				Team-scoped collaborative problem tracking API
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Auth
//	@tag.description			Registration and login
//
//	@tag.name					User
//	@tag.description			Profile management
//
//	@tag.name					Team
//	@tag.description			Teams and membership
//
//	@tag.name					Problem
//	@tag.description			Problems and problem sets
//
//	@tag.name					Submission
//	@tag.description			Solution submissions
//
//	@tag.name					Comment
//	@tag.description			Problem discussion
//
//	@tag.name					Tracker
//	@tag.description			Bookmarks and read status
package main

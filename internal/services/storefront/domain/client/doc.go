// Package client models shoppers: registration, device links, CRM notes and
// relocation.
//
// Device links and notes may arrive before registration, so a client stream can
// hold facts about a shopper the storefront has not registered yet. Moving
// requires registration.
package client

// Package contract binds the HelloWorld message contract:
//
//	string public message;
//	event UpdatedMessages(string oldStr, string newStr);
//	function update(string memory newMessage) public;
package contract

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// HelloWorldABI is the input ABI used to generate the binding from.
const HelloWorldABI = `[
	{"inputs":[{"internalType":"string","name":"initMessage","type":"string"}],"stateMutability":"nonpayable","type":"constructor"},
	{"anonymous":false,"inputs":[{"indexed":false,"internalType":"string","name":"oldStr","type":"string"},{"indexed":false,"internalType":"string","name":"newStr","type":"string"}],"name":"UpdatedMessages","type":"event"},
	{"inputs":[],"name":"message","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"newMessage","type":"string"}],"name":"update","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const updatedMessagesEvent = "UpdatedMessages"

var ErrNoContract = errors.New("no contract address configured")

// HelloWorld is a binding around the HelloWorld contract
type HelloWorld struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
	filterer bind.ContractFilterer
}

// HelloWorldUpdatedMessages represents an UpdatedMessages event
type HelloWorldUpdatedMessages struct {
	OldStr string
	NewStr string
	Raw    types.Log
}

// NewHelloWorld creates a new instance of HelloWorld, bound to a specific deployed contract
func NewHelloWorld(address common.Address, backend bind.ContractBackend) (*HelloWorld, error) {
	parsed, err := abi.JSON(strings.NewReader(HelloWorldABI))
	if err != nil {
		return nil, err
	}
	return &HelloWorld{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		filterer: backend,
	}, nil
}

// Address returns the bound contract address
func (h *HelloWorld) Address() common.Address {
	return h.address
}

// Message is a free data retrieval call binding the contract method message.
//
// Solidity: function message() view returns(string)
func (h *HelloWorld) Message(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := h.contract.Call(opts, &out, "message"); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", errors.New("message: empty result")
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// Update is a paid mutator transaction binding the contract method update.
//
// Solidity: function update(string newMessage) returns()
func (h *HelloWorld) Update(opts *bind.TransactOpts, newMessage string) (*types.Transaction, error) {
	return h.contract.Transact(opts, "update", newMessage)
}

// ParseUpdatedMessages is a log parse operation binding the contract event UpdatedMessages.
func (h *HelloWorld) ParseUpdatedMessages(log types.Log) (*HelloWorldUpdatedMessages, error) {
	ev := new(HelloWorldUpdatedMessages)
	if err := h.contract.UnpackLog(ev, updatedMessagesEvent, log); err != nil {
		return nil, err
	}
	ev.Raw = log
	return ev, nil
}

// FilterUpdatedMessages returns every UpdatedMessages event in the block range
func (h *HelloWorld) FilterUpdatedMessages(ctx context.Context, from uint64, to *uint64) ([]*HelloWorldUpdatedMessages, error) {
	q := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		Addresses: []common.Address{h.address},
		Topics:    [][]common.Hash{{h.abi.Events[updatedMessagesEvent].ID}},
	}
	if to != nil {
		q.ToBlock = new(big.Int).SetUint64(*to)
	}
	logs, err := h.filterer.FilterLogs(ctx, q)
	if err != nil {
		return nil, err
	}

	var out []*HelloWorldUpdatedMessages
	for _, l := range logs {
		ev, err := h.ParseUpdatedMessages(l)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// WatchUpdatedMessages is a free log subscription operation binding the contract event UpdatedMessages.
func (h *HelloWorld) WatchUpdatedMessages(opts *bind.WatchOpts, sink chan<- *HelloWorldUpdatedMessages) (event.Subscription, error) {
	logs, sub, err := h.contract.WatchLogs(opts, updatedMessagesEvent)
	if err != nil {
		return nil, err
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case log := <-logs:
				ev, err := h.ParseUpdatedMessages(log)
				if err != nil {
					return err
				}
				select {
				case sink <- ev:
				case err := <-sub.Err():
					return err
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}
